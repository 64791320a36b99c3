package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	norm, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), res.Errors)
	require.Len(t, norm.Source.Teams, 30)
	require.Equal(t, []int{1995, 2020}, norm.Source.SkipYears)
	require.NoError(t, Validate(cfg))
}

func TestNormalizeTeams(t *testing.T) {
	cfg := Default()
	cfg.Source.Teams = []string{" phi", "ARI", "", "PHI", "ari "}
	cfg.Source.SkipYears = []int{2020, 1995, 2020}
	cfg.Fetch.Mode = " Plain "

	norm, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), res.Errors)
	require.Equal(t, []string{"PHI", "ARI"}, norm.Source.Teams)
	require.Equal(t, []int{1995, 2020}, norm.Source.SkipYears)
	require.Equal(t, ModePlain, norm.Fetch.Mode)
}

func TestValidationErrors(t *testing.T) {
	cfg := Default()
	cfg.Source.Teams = nil
	cfg.Source.StartYear = 2020
	cfg.Source.EndYear = 2010
	cfg.Source.TableID = ""
	cfg.Fetch.Mode = "selenium"
	cfg.Pacing.Every = 0
	cfg.Output.Layout = "csv"
	cfg.Analysis.TestFraction = 1

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	require.Len(t, res.Errors, 7)
	require.Error(t, Validate(cfg))
}

func TestPacingWarning(t *testing.T) {
	cfg := Default()
	cfg.Pacing.Delay = time.Second
	cfg.Fetch.Dwell = 0
	_, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	require.NotEmpty(t, res.Warnings)

	_, res = NormalizeAndValidate(Default())
	require.Empty(t, res.Warnings)
}

func TestLoadWithLocalOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  teams: [PHI, NYM]
  start_year: 2001
  end_year: 2005
fetch:
  mode: plain
  dwell: 500ms
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yml"), []byte(`
source:
  end_year: 2004
pacing:
  delay: 10s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"PHI", "NYM"}, cfg.Source.Teams)
	require.Equal(t, 2001, cfg.Source.StartYear)
	require.Equal(t, 2004, cfg.Source.EndYear)
	require.Equal(t, ModePlain, cfg.Fetch.Mode)
	require.Equal(t, 500*time.Millisecond, cfg.Fetch.Dwell)
	require.Equal(t, 10*time.Second, cfg.Pacing.Delay)
	// untouched keys keep their defaults
	require.Equal(t, "appearances", cfg.Source.TableID)
	require.Equal(t, 162, cfg.Analysis.SeasonGames)
}

func TestLocalOverlayCanSetZeroValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  skip_years: [1995, 2020]
fetch:
  headless: true
pacing:
  delay: 6s
analysis:
  seed: 7
  team_colors:
    PHI: "#E81828"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yml"), []byte(`
source:
  skip_years: []
fetch:
  headless: false
pacing:
  delay: 0s
analysis:
  seed: 0
  team_colors:
    PHI: "#000000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Fetch.Headless)
	require.Zero(t, cfg.Pacing.Delay)
	require.Empty(t, cfg.Source.SkipYears)
	require.Zero(t, cfg.Analysis.Seed)
	require.Equal(t, "#000000", cfg.Analysis.TeamColors["PHI"])
	// keys the local file leaves out are untouched
	require.Equal(t, 1, cfg.Pacing.Every)
	require.Equal(t, "#A71930", cfg.Analysis.TeamColors["ARI"])
	require.Equal(t, 2*time.Second, cfg.Fetch.Dwell)
}

func TestTeamColorsValidated(t *testing.T) {
	cfg := Default()
	cfg.Analysis.TeamColors = map[string]string{" phi ": "#e81828", "NYM": "blue"}
	norm, res := NormalizeAndValidate(cfg)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "team_colors.NYM")
	require.Equal(t, "#e81828", norm.Analysis.TeamColors["PHI"])
}

func TestEnsureUserConfigAndSave(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg.Source.EndYear = 2010
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2010, again.Source.EndYear)

	cfg.Source.TableID = ""
	require.Error(t, SaveAtomic(path, cfg))
}

func TestOutputDir(t *testing.T) {
	cfg := Default()
	cfg.App.DataDir = "/var/lib/mlbwar"
	require.Equal(t, "/var/lib/mlbwar/data", cfg.OutputDir())
	require.Equal(t, "/var/lib/mlbwar/ledger.db", cfg.LedgerPath())
	cfg.Output.Dir = "/srv/sheets"
	require.Equal(t, "/srv/sheets", cfg.OutputDir())
}
