package cdsio

import (
	"testing"

	"github.com/quantcore/isdacds/daycount"
	"github.com/stretchr/testify/require"
)

func TestParseDayCountAcceptsSpecLiteralTokens(t *testing.T) {
	should := require.New(t)

	for s, want := range map[string]daycount.Convention{
		"ACT_365F":     daycount.ACT365F,
		"ACT_360":      daycount.ACT360,
		"THIRTY_360":   daycount.Thirty360,
		"ACT_ACT_ISDA": daycount.ActActISDA,
		"act365f":      daycount.ACT365F,
	} {
		got, err := ParseDayCount(s)
		should.NoError(err, "token %q", s)
		should.Equal(want, got, "token %q", s)
	}
}

func TestParseDayCountRejectsUnknownToken(t *testing.T) {
	should := require.New(t)
	_, err := ParseDayCount("BOGUS")
	should.Error(err)
}

func TestParseBusinessDayConventionAcceptsSpecLiteralTokens(t *testing.T) {
	should := require.New(t)

	for s, want := range map[string]daycount.BusinessDayConvention{
		"FOLLOW":          daycount.Following,
		"MODIFIED_FOLLOW": daycount.ModifiedFollowing,
		"PRECEDING":       daycount.Preceding,
		"":                daycount.None,
		"NONE":            daycount.None,
	} {
		got, err := ParseBusinessDayConvention(s)
		should.NoError(err, "token %q", s)
		should.Equal(want, got, "token %q", s)
	}
}

func TestParseBusinessDayConventionRejectsUnknownToken(t *testing.T) {
	should := require.New(t)
	_, err := ParseBusinessDayConvention("BOGUS")
	should.Error(err)
}
