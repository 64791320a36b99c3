package domain

// AggregatedRow is one team-season in the rebuilt aggregate view.
type AggregatedRow struct {
	Year        int     `json:"year"`
	Team        string  `json:"team"`
	TotalMetric float64 `json:"total_metric"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
}
