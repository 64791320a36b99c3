package extract

import (
	"testing"

	"mlbwar-engine/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const appearancesPage = `<html><body>
<div id="info"><p><strong>Record:</strong> 86-76-0, Finished 2nd in <a href="/leagues/NL/2004.shtml">NL_East</a></p></div>
<div id="all_appearances">
<table id="appearances">
 <thead>
  <tr class="over_header"><th colspan="3"></th><th colspan="2">Games</th></tr>
  <tr><th>Name</th><th>Age</th><th>WAR</th><th>G</th><th>G</th></tr>
 </thead>
 <tbody>
  <tr><th>Jimmy  Rollins</th><td>25</td><td>4.6</td><td>154</td><td>154</td></tr>
  <tr class="thead"><th>Name</th><th>Age</th><th>WAR</th><th>G</th><th>G</th></tr>
  <tr><th>Bobby Abreu</th><td>30</td><td>6.0</td><td>159</td></tr>
  <tr class="spacer"><td colspan="5"></td></tr>
 </tbody>
 <tfoot><tr><th>Team Totals</th><td></td><td>10.6</td><td></td><td></td></tr></tfoot>
</table>
</div>
</body></html>`

func TestTable(t *testing.T) {
	tbl, err := Table(appearancesPage, "appearances")
	require.NoError(t, err)

	want := domain.Table{
		Columns: []string{"Name", "Age", "WAR", "G", "G.1"},
		Rows: [][]string{
			{"Jimmy Rollins", "25", "4.6", "154", "154"},
			{"Bobby Abreu", "30", "6.0", "159", ""},
		},
	}
	if diff := cmp.Diff(want, tbl); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableInsideComment(t *testing.T) {
	page := `<div id="all_players_value_batting"><!--
<table id="players_value_batting"><thead><tr><th>Name</th><th>WAR</th></tr></thead>
<tbody><tr><td>A</td><td>1.2</td></tr></tbody></table>
--></div>`
	tbl, err := Table(page, "players_value_batting")
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "WAR"}, tbl.Columns)
	require.Equal(t, [][]string{{"A", "1.2"}}, tbl.Rows)
}

func TestTableWrapperAndNoThead(t *testing.T) {
	page := `<div id="teams_active"><table>
<tr><th>Franchise</th><th>From</th></tr>
<tr><td>Philadelphia Phillies</td><td>1883</td></tr>
</table></div>`
	tbl, err := Table(page, "teams_active")
	require.NoError(t, err)
	require.Equal(t, []string{"Franchise", "From"}, tbl.Columns)
	require.Equal(t, [][]string{{"Philadelphia Phillies", "1883"}}, tbl.Rows)
}

func TestTableNotFound(t *testing.T) {
	_, err := Table(appearancesPage, "team_pitching")
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = Table(`<div id="appearances">no table here</div>`, "appearances")
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestRecordText(t *testing.T) {
	text, ok := RecordText(appearancesPage)
	require.True(t, ok)
	require.Equal(t, "86-76-0", text)

	rec, err := domain.ParseRecord(text)
	require.NoError(t, err)
	require.Equal(t, domain.Record{Wins: 86, Losses: 76}, rec)
}

func TestRecordTextVariants(t *testing.T) {
	testCases := []struct {
		page string
		text string
		ok   bool
	}{
		{page: `<p><strong>Record:</strong>96-66-0, finished 1st in NL East</p>`, text: "96-66-0", ok: true},
		{page: `<p><strong>Record:</strong><span>92-70</span></p>`, text: "92-70", ok: true},
		{page: `<p><strong>Pythag:</strong> 90-72</p>`},
		{page: `<p><strong>Record:</strong></p>`},
		{page: ``},
	}
	for _, test := range testCases {
		text, ok := RecordText(test.page)
		require.Equal(t, test.ok, ok, test.page)
		require.Equal(t, test.text, text, test.page)
	}
}
