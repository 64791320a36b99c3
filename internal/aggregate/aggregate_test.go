package aggregate

import (
	"os"
	"path/filepath"
	"testing"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/sheet"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeItem(t *testing.T, dir, name, layout string, war []string, rec *domain.Record) {
	t.Helper()
	tbl := domain.Table{Columns: []string{"Name", "WAR"}}
	for i, v := range war {
		tbl.Rows = append(tbl.Rows, []string{string(rune('A' + i)), v})
	}
	require.NoError(t, sheet.NewWriter(layout).Write(filepath.Join(dir, name), &tbl, rec))
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeItem(t, dir, "ARI_2019.xlsx", sheet.LayoutSheets, []string{"3.5", "1.5"}, &domain.Record{Wins: 85, Losses: 77})
	writeItem(t, dir, "ARI_2019_old.xlsx", sheet.LayoutSheets, []string{"99"}, &domain.Record{Wins: 1, Losses: 1})
	writeItem(t, dir, "ARI_2018.xlsx", sheet.LayoutColumns, []string{"2", "x", "", "-0.5"}, &domain.Record{Wins: 82, Losses: 80})
	writeItem(t, dir, "ATL_2018.xlsx", sheet.LayoutSheets, []string{"10"}, &domain.Record{Wins: 90, Losses: 72})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "BOS_2001.xlsx"), 0o755))

	res, err := Dir(dir, "WAR")
	require.NoError(t, err)
	require.Empty(t, res.Skipped)

	want := []domain.AggregatedRow{
		{Year: 2018, Team: "ARI", TotalMetric: 1.5, Wins: 82, Losses: 80},
		{Year: 2019, Team: "ARI", TotalMetric: 5, Wins: 85, Losses: 77},
		{Year: 2018, Team: "ATL", TotalMetric: 10, Wins: 90, Losses: 72},
	}
	if diff := cmp.Diff(want, res.Rows); diff != "" {
		t.Fatalf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestDirReportsUnusableFiles(t *testing.T) {
	dir := t.TempDir()
	writeItem(t, dir, "PHI_2004.xlsx", sheet.LayoutSheets, []string{"4"}, nil)
	writeItem(t, dir, "NYM_2004.xlsx", sheet.LayoutSheets, []string{"4"}, &domain.Record{Wins: 71, Losses: 91})
	require.NoError(t, sheet.NewWriter(sheet.LayoutSheets).Write(
		filepath.Join(dir, "TOR_2004.xlsx"), nil, &domain.Record{Wins: 67, Losses: 94}))

	res, err := Dir(dir, "WAR")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "NYM", res.Rows[0].Team)

	var files []string
	for _, s := range res.Skipped {
		files = append(files, s.File)
	}
	require.ElementsMatch(t, []string{"PHI_2004.xlsx", "TOR_2004.xlsx"}, files)

	_, err = Dir(dir, "oWAR")
	require.NoError(t, err)
}

func TestDirMissing(t *testing.T) {
	_, err := Dir(filepath.Join(t.TempDir(), "nope"), "WAR")
	require.Error(t, err)
}

func TestToTable(t *testing.T) {
	tbl := ToTable([]domain.AggregatedRow{{Year: 2004, Team: "PHI", TotalMetric: 35.5, Wins: 86, Losses: 76}}, "WAR")
	require.Equal(t, []string{"Year", "Team", "WAR", "W", "L"}, tbl.Columns)
	require.Equal(t, [][]string{{"2004", "PHI", "35.5", "86", "76"}}, tbl.Rows)
}
