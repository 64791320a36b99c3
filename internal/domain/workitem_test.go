package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const base = "https://www.baseball-reference.com/teams"

func TestBuildWorkItems(t *testing.T) {
	testCases := []struct {
		teams      []string
		start, end int
		skip       []int
		wantYears  int
	}{
		{teams: []string{"ARI", "ATL"}, start: 2010, end: 2020, skip: []int{2013, 2015}, wantYears: 9},
		{teams: []string{"PHI"}, start: 1990, end: 2023, skip: []int{1995, 2020}, wantYears: 32},
		{teams: []string{"NYY", "BOS", "TOR"}, start: 2000, end: 2000, wantYears: 1},
		{teams: []string{"SEA"}, start: 2001, end: 2001, skip: []int{2001}, wantYears: 0},
		{teams: nil, start: 2001, end: 2010, wantYears: 10},
	}

	for _, test := range testCases {
		items := BuildWorkItems(base, test.teams, test.start, test.end, test.skip)
		require.Len(t, items, len(test.teams)*test.wantYears)

		seen := map[string]bool{}
		for i, it := range items {
			require.False(t, seen[it.Key()], "duplicate %s", it.Key())
			seen[it.Key()] = true
			require.NotContains(t, test.skip, it.Year)

			// team-major: item i belongs to team i / wantYears
			require.Equal(t, test.teams[i/test.wantYears], it.Team)
			if i%test.wantYears != 0 {
				require.Less(t, items[i-1].Year, it.Year)
			}
		}
	}
}

func TestBuildWorkItemsShape(t *testing.T) {
	items := BuildWorkItems(base+"/", []string{"PHI", "ARI"}, 2003, 2004, nil)
	want := []WorkItem{
		{Team: "PHI", Year: 2003, URL: base + "/PHI/2003.shtml", FileName: "PHI_2003.xlsx"},
		{Team: "PHI", Year: 2004, URL: base + "/PHI/2004.shtml", FileName: "PHI_2004.xlsx"},
		{Team: "ARI", Year: 2003, URL: base + "/ARI/2003.shtml", FileName: "ARI_2003.xlsx"},
		{Team: "ARI", Year: 2004, URL: base + "/ARI/2004.shtml", FileName: "ARI_2004.xlsx"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("work items mismatch (-want +got):\n%s", diff)
	}
}

func TestResume(t *testing.T) {
	items := BuildWorkItems(base, []string{"OAK", "PHI", "PIT"}, 2003, 2005, nil)

	rest, ok := ResumeFrom(items, "phi", 2004)
	require.True(t, ok)
	require.Len(t, rest, 5)
	require.Equal(t, "PHI_2004", rest[0].Key())

	all, ok := ResumeFrom(items, "PHI", 1900)
	require.False(t, ok)
	require.Len(t, all, len(items))

	require.Len(t, ResumeAt(items, 0), 9)
	require.Len(t, ResumeAt(items, 4), 5)
	require.Equal(t, "PHI_2004", ResumeAt(items, 4)[0].Key())
	require.Empty(t, ResumeAt(items, 99))
}

func TestParseResumeKey(t *testing.T) {
	team, year, err := ParseResumeKey("phi:2004")
	require.NoError(t, err)
	require.Equal(t, "PHI", team)
	require.Equal(t, 2004, year)

	team, year, err = ParseResumeKey("ARI_2019")
	require.NoError(t, err)
	require.Equal(t, "ARI", team)
	require.Equal(t, 2019, year)

	for _, bad := range []string{"", "PHI", "PHI:", ":2004", "PHI:20x4"} {
		_, _, err := ParseResumeKey(bad)
		require.Error(t, err, bad)
	}
}

func TestParseFileName(t *testing.T) {
	testCases := []struct {
		name string
		team string
		year int
		ok   bool
	}{
		{name: "ARI_2019.xlsx", team: "ARI", year: 2019, ok: true},
		{name: "/tmp/data/PHI_2004.xlsx", team: "PHI", year: 2004, ok: true},
		{name: "ARI_2019_old.xlsx"},
		{name: "ARI2019.xlsx"},
		{name: "ARI_2019.csv"},
		{name: "ARI_twenty.xlsx"},
		{name: "_2019.xlsx"},
		{name: "franchises.xlsx"},
	}

	for _, test := range testCases {
		team, year, ok := ParseFileName(test.name)
		require.Equal(t, test.ok, ok, test.name)
		require.Equal(t, test.team, team, test.name)
		require.Equal(t, test.year, year, test.name)
	}
}
