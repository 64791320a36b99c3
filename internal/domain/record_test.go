package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	testCases := []struct {
		text     string
		expected Record
	}{
		{text: "96-66-0", expected: Record{Wins: 96, Losses: 66, Ties: 0}},
		{text: "96-66-0, finished 1st in NL East", expected: Record{Wins: 96, Losses: 66}},
		{text: "  86-76-0, finished 2nd in NL East ", expected: Record{Wins: 86, Losses: 76}},
		{text: "81-80-1", expected: Record{Wins: 81, Losses: 80, Ties: 1}},
		{text: "92-70", expected: Record{Wins: 92, Losses: 70}},
	}

	for _, test := range testCases {
		rec, err := ParseRecord(test.text)
		require.NoError(t, err, test.text)
		require.Equal(t, test.expected, rec)
	}
}

func TestParseRecordNotFound(t *testing.T) {
	for _, text := range []string{"garbage", "", " , finished", "96", "96-66-0-1", "96-x-0", "-1-66-0", "Record not found"} {
		_, err := ParseRecord(text)
		require.ErrorIs(t, err, ErrRecordNotFound, text)
	}
}

func TestRecordGames(t *testing.T) {
	r := Record{Wins: 86, Losses: 76}
	require.Equal(t, 162, r.Games())
	require.Equal(t, "86-76-0", r.String())
}
