// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	ModeRendered = "rendered"
	ModePlain    = "plain"

	LayoutSheets  = "sheets"
	LayoutColumns = "columns"
)

type App struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
	Port    int    `yaml:"port" json:"port"`
}

type Source struct {
	BaseURL   string   `yaml:"base_url" json:"base_url"`
	TableID   string   `yaml:"table_id" json:"table_id"`
	Teams     []string `yaml:"teams" json:"teams"`
	StartYear int      `yaml:"start_year" json:"start_year"`
	EndYear   int      `yaml:"end_year" json:"end_year"`
	SkipYears []int    `yaml:"skip_years" json:"skip_years"`
}

type Fetch struct {
	Mode       string        `yaml:"mode" json:"mode"`   // rendered | plain
	Dwell      time.Duration `yaml:"dwell" json:"dwell"` // blind wait for client-side rendering
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`
	Headless   bool          `yaml:"headless" json:"headless"`
	ChromePath string        `yaml:"chrome_path" json:"chrome_path"`
	RPS        float64       `yaml:"rps" json:"rps"` // per-host limit for plain GETs
	Burst      int           `yaml:"burst" json:"burst"`
}

// Pacing sleeps Delay after every Every-th item.
type Pacing struct {
	Every int           `yaml:"every" json:"every"`
	Delay time.Duration `yaml:"delay" json:"delay"`
}

type Output struct {
	Dir    string `yaml:"dir" json:"dir"`
	Layout string `yaml:"layout" json:"layout"` // sheets | columns
}

type Analysis struct {
	MetricColumn  string  `yaml:"metric_column" json:"metric_column"`
	TestFraction  float64 `yaml:"test_fraction" json:"test_fraction"`
	Seed          int64   `yaml:"seed" json:"seed"`
	SeasonGames   int     `yaml:"season_games" json:"season_games"`
	PredictMetric float64 `yaml:"predict_metric" json:"predict_metric"`

	// TeamColors maps a team code to a #RRGGBB scatter colour for the plot.
	TeamColors map[string]string `yaml:"team_colors" json:"team_colors"`
}

type Config struct {
	App      App      `yaml:"app" json:"app"`
	Source   Source   `yaml:"source" json:"source"`
	Fetch    Fetch    `yaml:"fetch" json:"fetch"`
	Pacing   Pacing   `yaml:"pacing" json:"pacing"`
	Output   Output   `yaml:"output" json:"output"`
	Analysis Analysis `yaml:"analysis" json:"analysis"`
}

// DefaultTeams are the 30 current franchises by baseball-reference code.
var DefaultTeams = []string{
	"ARI", "ATL", "BAL", "BOS", "CHC", "CHW", "CIN", "CLE", "COL", "DET",
	"HOU", "KCR", "LAA", "LAD", "MIA", "MIL", "MIN", "NYM", "NYY", "OAK",
	"PHI", "PIT", "SDP", "SFG", "SEA", "STL", "TBR", "TEX", "TOR", "WSN",
}

// DefaultTeamColors returns the primary club colours keyed like DefaultTeams.
func DefaultTeamColors() map[string]string {
	return map[string]string{
		"ARI": "#A71930", "ATL": "#13274F", "BAL": "#DF4601", "BOS": "#BD3039",
		"CHC": "#0E3386", "CHW": "#27251F", "CIN": "#C6011F", "CLE": "#E31937",
		"COL": "#33006F", "DET": "#0C2340", "HOU": "#002D62", "KCR": "#004687",
		"LAA": "#BA0021", "LAD": "#005A9C", "MIA": "#00A3E0", "MIL": "#0A2351",
		"MIN": "#002B5C", "NYM": "#002D72", "NYY": "#0C2340", "OAK": "#003831",
		"PHI": "#E81828", "PIT": "#FDB827", "SDP": "#2F241D", "SFG": "#FD5A1E",
		"SEA": "#0C2C56", "STL": "#C41E3A", "TBR": "#092C5C", "TEX": "#003278",
		"TOR": "#134A8E", "WSN": "#AB0003",
	}
}

func Default() Config {
	return Config{
		App: App{DataDir: ".", Port: 38471},
		Source: Source{
			BaseURL:   "https://www.baseball-reference.com/teams",
			TableID:   "appearances",
			Teams:     append([]string(nil), DefaultTeams...),
			StartYear: 1990,
			EndYear:   2023,
			SkipYears: []int{1995, 2020},
		},
		Fetch: Fetch{
			Mode:      ModeRendered,
			Dwell:     2 * time.Second,
			Timeout:   30 * time.Second,
			UserAgent: "mlbwar-engine/1.0 (+local)",
			Headless:  true,
			RPS:       10.0 / 60.0,
			Burst:     1,
		},
		Pacing: Pacing{Every: 1, Delay: 6 * time.Second},
		Output: Output{Dir: "data", Layout: LayoutSheets},
		Analysis: Analysis{
			MetricColumn:  "WAR",
			TestFraction:  0.2,
			Seed:          42,
			SeasonGames:   162,
			PredictMetric: 35,
			TeamColors:    DefaultTeamColors(),
		},
	}
}

// Load reads path over the defaults, then merges <name>.local.<ext> on top
// when it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	local := LocalPath(path)
	lb, err := os.ReadFile(local)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if len(lb) > 0 {
		// Decode onto a copy of what is loaded so keys absent from the local
		// file keep their values and present ones win even when zero
		// (headless: false, delay: 0s, skip_years: []).
		override := cfg
		override.Analysis.TeamColors = maps.Clone(cfg.Analysis.TeamColors)
		if err := yaml.Unmarshal(lb, &override); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", local, err)
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return cfg, fmt.Errorf("merge %s: %w", local, err)
		}
	}
	return cfg, nil
}

// LocalPath maps config.yml to config.local.yml.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// OutputDir resolves Output.Dir against App.DataDir unless it is absolute.
func (c Config) OutputDir() string {
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(c.App.DataDir, c.Output.Dir)
}

func (c Config) LedgerPath() string {
	return filepath.Join(c.App.DataDir, "ledger.db")
}
