package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// earliest season baseball-reference has team pages for
const firstSeason = 1871

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	// teams: trim, upper-case, drop blanks and duplicates, keep order
	seen := map[string]bool{}
	var teams []string
	for _, t := range out.Source.Teams {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		teams = append(teams, t)
	}
	out.Source.Teams = teams

	skip := map[int]bool{}
	var skipYears []int
	for _, y := range out.Source.SkipYears {
		if !skip[y] {
			skip[y] = true
			skipYears = append(skipYears, y)
		}
	}
	sort.Ints(skipYears)
	out.Source.SkipYears = skipYears

	out.Source.BaseURL = strings.TrimRight(strings.TrimSpace(out.Source.BaseURL), "/")
	out.Source.TableID = strings.TrimSpace(out.Source.TableID)
	out.Fetch.Mode = strings.ToLower(strings.TrimSpace(out.Fetch.Mode))
	out.Output.Layout = strings.ToLower(strings.TrimSpace(out.Output.Layout))
	out.Analysis.MetricColumn = strings.TrimSpace(out.Analysis.MetricColumn)

	// ---- source ----
	if out.Source.BaseURL == "" {
		res.addErr("source.base_url is required")
	}
	if out.Source.TableID == "" {
		res.addErr("source.table_id is required")
	}
	if len(out.Source.Teams) == 0 {
		res.addErr("source.teams must have at least 1 team code")
	}
	if out.Source.StartYear < firstSeason {
		res.addErr("source.start_year must be >= %d", firstSeason)
	}
	if out.Source.EndYear < out.Source.StartYear {
		res.addErr("source.end_year (%d) must be >= source.start_year (%d)", out.Source.EndYear, out.Source.StartYear)
	}
	for _, y := range out.Source.SkipYears {
		if y < out.Source.StartYear || y > out.Source.EndYear {
			res.addWarn("source.skip_years contains %d which is outside %d..%d", y, out.Source.StartYear, out.Source.EndYear)
		}
	}

	// ---- fetch ----
	switch out.Fetch.Mode {
	case ModeRendered, ModePlain:
	default:
		res.addErr("fetch.mode must be %q or %q", ModeRendered, ModePlain)
	}
	if out.Fetch.Dwell < 0 {
		res.addErr("fetch.dwell must be >= 0")
	}
	if out.Fetch.Timeout <= 0 {
		res.addErr("fetch.timeout must be > 0")
	}
	if out.Fetch.RPS <= 0 {
		res.addErr("fetch.rps must be > 0")
	}
	if out.Fetch.Burst < 1 {
		res.addErr("fetch.burst must be >= 1")
	}

	// ---- pacing ----
	if out.Pacing.Every < 1 {
		res.addErr("pacing.every must be >= 1")
	}
	if out.Pacing.Delay < 0 {
		res.addErr("pacing.delay must be >= 0")
	}
	if out.Pacing.Every >= 1 && out.Pacing.Delay >= 0 {
		// the site allows roughly 10 requests per minute
		perMinute := float64(out.Pacing.Every) * float64(time.Minute) / float64(out.Pacing.Delay+out.Fetch.Dwell+time.Nanosecond)
		if perMinute > 10 {
			res.addWarn("pacing allows ~%.0f requests/minute; the site rate-limits above 10", perMinute)
		}
	}

	// ---- output ----
	if strings.TrimSpace(out.Output.Dir) == "" {
		res.addErr("output.dir is required")
	}
	switch out.Output.Layout {
	case LayoutSheets, LayoutColumns:
	default:
		res.addErr("output.layout must be %q or %q", LayoutSheets, LayoutColumns)
	}

	// ---- analysis ----
	if out.Analysis.MetricColumn == "" {
		res.addErr("analysis.metric_column is required")
	}
	if out.Analysis.TestFraction <= 0 || out.Analysis.TestFraction >= 1 {
		res.addErr("analysis.test_fraction must be in (0, 1)")
	}
	if out.Analysis.SeasonGames <= 0 {
		res.addErr("analysis.season_games must be > 0")
	}
	if out.Analysis.TeamColors != nil {
		codes := make([]string, 0, len(out.Analysis.TeamColors))
		for team := range out.Analysis.TeamColors {
			codes = append(codes, team)
		}
		sort.Strings(codes)
		colors := make(map[string]string, len(codes))
		for _, team := range codes {
			c := strings.TrimSpace(out.Analysis.TeamColors[team])
			if !isHexColor(c) {
				res.addErr("analysis.team_colors.%s must be #RRGGBB, got %q", team, c)
			}
			colors[strings.ToUpper(strings.TrimSpace(team))] = c
		}
		out.Analysis.TeamColors = colors
	}

	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 0..65535")
	}

	return out, res
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
