package scrape

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/types"
	"mlbwar-engine/internal/sheet"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const base = "https://www.baseball-reference.com/teams"

const phi2004 = `<html><body>
<div id="meta"><p><strong>Record:</strong> 86-76-0, Finished 2nd in NL East</p></div>
<div id="all_appearances"><!--
<table id="appearances">
 <thead><tr><th>Name</th><th>Age</th><th>WAR</th></tr></thead>
 <tbody>
  <tr><th>Jimmy Rollins</th><td>25</td><td>4.6</td></tr>
  <tr><th>Bobby Abreu</th><td>30</td><td>6.0</td></tr>
 </tbody>
</table>
--></div>
</body></html>`

const noRecord = `<html><body>
<table id="appearances"><thead><tr><th>Name</th><th>WAR</th></tr></thead>
<tbody><tr><td>A</td><td>1.0</td></tr></tbody></table>
</body></html>`

const noTable = `<html><body><p><strong>Record:</strong> 90-72-0</p></body></html>`

const nothing = `<html><body><p>Page not found</p></body></html>`

func pages(m map[string]string) types.Fetcher {
	return types.FetcherFunc(func(_ context.Context, url string) (types.Page, error) {
		html, ok := m[url]
		if !ok {
			return types.Page{URL: url, Status: 404}, &types.StatusError{URL: url, Code: 404}
		}
		return types.Page{URL: url, Status: 200, HTML: html}, nil
	})
}

func testRunner(t *testing.T, f types.Fetcher) *Runner {
	t.Helper()
	cfg := config.Default()
	cfg.App.DataDir = t.TempDir()
	cfg.Pacing.Delay = 0
	return NewRunner(cfg, f)
}

func TestScrapeEndToEnd(t *testing.T) {
	item := domain.NewWorkItem(base, "PHI", 2004)
	r := testRunner(t, pages(map[string]string{item.URL: phi2004}))

	sum, err := r.Scrape(context.Background(), []domain.WorkItem{item})
	require.NoError(t, err)
	require.Equal(t, 1, sum.Count(StatusOK))

	o := sum.Outcomes[0]
	require.Equal(t, 2, o.Rows)
	require.Equal(t, filepath.Join(r.OutputDir, "PHI_2004.xlsx"), o.Path)

	wb, err := sheet.Read(o.Path)
	require.NoError(t, err)
	require.NotNil(t, wb.Table)
	require.Equal(t, []string{"Name", "Age", "WAR"}, wb.Table.Columns)
	require.Equal(t, "Bobby Abreu", wb.Table.Cell(1, 0))
	require.NotNil(t, wb.Record)
	if diff := cmp.Diff(domain.Record{Wins: 86, Losses: 76, Ties: 0}, *wb.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeOutcomes(t *testing.T) {
	items := domain.BuildWorkItems(base, []string{"AAA", "BBB", "CCC", "DDD", "EEE"}, 2004, 2004, nil)
	r := testRunner(t, pages(map[string]string{
		items[0].URL: phi2004,
		items[1].URL: noRecord,
		items[2].URL: noTable,
		items[3].URL: nothing,
		// EEE is a 404
	}))

	var seen []string
	r.OnOutcome = func(o Outcome) { seen = append(seen, o.Item.Key()) }

	sum, err := r.Scrape(context.Background(), items)
	require.NoError(t, err)
	require.Equal(t, []string{"AAA_2004", "BBB_2004", "CCC_2004", "DDD_2004", "EEE_2004"}, seen)

	type got struct {
		Status Status
		Reason Reason
	}
	var all []got
	for _, o := range sum.Outcomes {
		all = append(all, got{o.Status, o.Reason})
	}
	want := []got{
		{StatusOK, ReasonNone},
		{StatusPartial, ReasonRecordNotFound},
		{StatusPartial, ReasonTableNotFound},
		{StatusSkipped, ReasonTableNotFound},
		{StatusSkipped, ReasonFetchFailed},
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("outcomes (-want +got):\n%s", diff)
	}
	require.Equal(t, 5, sum.Total)
	require.Equal(t, 2, sum.ByStatus[StatusSkipped])
	require.Equal(t, 2, sum.ByReason[ReasonTableNotFound])

	wb, err := sheet.Read(filepath.Join(r.OutputDir, "CCC_2004.xlsx"))
	require.NoError(t, err)
	require.Nil(t, wb.Table)
	require.Equal(t, 90, wb.Record.Wins)

	_, err = os.Stat(filepath.Join(r.OutputDir, "DDD_2004.xlsx"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScrapeRerunOverwrites(t *testing.T) {
	item := domain.NewWorkItem(base, "PHI", 2004)
	r := testRunner(t, pages(map[string]string{item.URL: phi2004}))

	for i := 0; i < 2; i++ {
		_, err := r.Scrape(context.Background(), []domain.WorkItem{item})
		require.NoError(t, err)
	}
	wb, err := sheet.Read(filepath.Join(r.OutputDir, item.FileName))
	require.NoError(t, err)
	require.Len(t, wb.Table.Rows, 2)
}

func TestScrapeStopsOnCancel(t *testing.T) {
	items := domain.BuildWorkItems(base, []string{"PHI"}, 2001, 2004, nil)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := testRunner(t, types.FetcherFunc(func(context.Context, string) (types.Page, error) {
		calls++
		cancel()
		return types.Page{HTML: phi2004}, nil
	}))

	sum, err := r.Scrape(ctx, items)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sum.Total)
}

func TestScrapeLocked(t *testing.T) {
	r := testRunner(t, pages(nil))
	lock, err := LockOutput(r.OutputDir)
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = r.Scrape(context.Background(), nil)
	require.ErrorIs(t, err, ErrLocked)
}

func TestRecords(t *testing.T) {
	r := testRunner(t, nil)
	tbl := domain.Table{Columns: []string{"Name", "WAR"}, Rows: [][]string{{"A", "1.5"}}}
	require.NoError(t, r.Writer.Write(filepath.Join(r.OutputDir, "PHI_2004.xlsx"), &tbl, nil))
	require.NoError(t, r.Writer.Write(filepath.Join(r.OutputDir, "NYM_2004.xlsx"), &tbl, nil))
	require.NoError(t, r.Writer.Write(filepath.Join(r.OutputDir, "PHI_2004_old.xlsx"), &tbl, nil))

	phi := domain.NewWorkItem(base, "PHI", 2004)
	r.Fetcher = pages(map[string]string{phi.URL: phi2004})

	sum, err := r.Records(context.Background(), base)
	require.NoError(t, err)
	require.Equal(t, 2, sum.Total)
	require.Equal(t, "NYM_2004", sum.Outcomes[0].Item.Key())
	require.Equal(t, ReasonFetchFailed, sum.Outcomes[0].Reason)
	require.Equal(t, StatusOK, sum.Outcomes[1].Status)

	wb, err := sheet.Read(filepath.Join(r.OutputDir, "PHI_2004.xlsx"))
	require.NoError(t, err)
	require.Equal(t, &domain.Record{Wins: 86, Losses: 76}, wb.Record)
	require.Len(t, wb.Table.Rows, 1)
}

func TestActiveFranchises(t *testing.T) {
	tbl := domain.Table{
		Columns: []string{"Franchise", "From"},
		Rows: [][]string{
			{"Arizona Diamondbacks", "1998"},
			{"Also played as Anaheim Angels", "1997"},
			{"Montreal Expos, see Washington Nationals", "1969"},
			{"Washington Nationals", "1969"},
		},
	}
	got := ActiveFranchises(tbl)
	require.Equal(t, [][]string{{"Arizona Diamondbacks", "1998"}, {"Washington Nationals", "1969"}}, got.Rows)
}

func TestFranchises(t *testing.T) {
	page := `<table id="teams_active"><thead><tr><th>Franchise</th><th>From</th></tr></thead><tbody>
<tr><th>Philadelphia Phillies</th><td>1883</td></tr>
<tr><td>Also played as Philadelphia Quakers</td><td>1883</td></tr>
</tbody></table>`
	r := testRunner(t, pages(map[string]string{FranchisesURL: page}))

	o := r.Franchises(context.Background(), "")
	require.Equal(t, StatusOK, o.Status)
	require.Equal(t, 1, o.Rows)

	wb, err := sheet.Read(o.Path)
	require.NoError(t, err)
	require.Equal(t, "Philadelphia Phillies", wb.Table.Cell(0, 0))
}

func TestHostLimiterYieldsToPacer(t *testing.T) {
	cfg := config.Default() // 6s after every item, 10 requests/minute
	require.Nil(t, hostLimiter(cfg))

	cfg.Pacing.Every = 3 // 2s per item is faster than the host allows
	require.NotNil(t, hostLimiter(cfg))

	cfg.Pacing.Every = 1
	cfg.Pacing.Delay = 0
	require.NotNil(t, hostLimiter(cfg))

	f, err := NewFetcher(config.Default(), config.ModePlain)
	require.NoError(t, err)
	require.NotNil(t, f)
}
