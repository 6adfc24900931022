// Package cdsio holds the JSON/string parsing helpers shared by the cmd/
// tools: date parsing and the enum-name-to-value mappings for day count,
// compounding basis, interpolation, and business-day convention, each
// following the teacher's cmd/npv/internal/ois.go pattern of a small
// "from input string" switch per field.
package cdsio

import (
	"fmt"
	"strings"

	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/daycount"
)

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a daycount.Date.
func ParseDate(s string) (daycount.Date, error) {
	d, err := daycount.Parse(strings.TrimSpace(s))
	if err != nil {
		return daycount.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseDayCount maps a day count name to daycount.Convention. Accepts the
// spec-literal token (e.g. "ACT_365F") as well as "/" or "_"-stripped and
// loosely-punctuated variants.
func ParseDayCount(s string) (daycount.Convention, error) {
	switch normalizeEnum(s) {
	case "ACT365F", "ACT365":
		return daycount.ACT365F, nil
	case "ACT360":
		return daycount.ACT360, nil
	case "THIRTY360", "30360":
		return daycount.Thirty360, nil
	case "ACTACTISDA", "ACTACT":
		return daycount.ActActISDA, nil
	default:
		return "", fmt.Errorf("unrecognized day_count %q", s)
	}
}

// ParseBasis maps a compounding basis name to curve.CompoundingBasis.
func ParseBasis(s string) (curve.CompoundingBasis, error) {
	switch normalizeEnum(s) {
	case "CONTINUOUS":
		return curve.Continuous, nil
	case "ANNUAL":
		return curve.Annual, nil
	case "SEMIANNUAL", "SEMI":
		return curve.SemiAnnual, nil
	case "QUARTERLY":
		return curve.Quarterly, nil
	case "MONTHLY":
		return curve.Monthly, nil
	default:
		return 0, fmt.Errorf("unrecognized compounding_basis %q", s)
	}
}

// ParseInterpolation maps an interpolation name to curve.Interpolation.
func ParseInterpolation(s string) (curve.Interpolation, error) {
	switch normalizeEnum(s) {
	case "LINEAR":
		return curve.Linear, nil
	case "FLATFORWARD":
		return curve.FlatForward, nil
	case "LINEARFORWARD":
		return curve.LinearForward, nil
	default:
		return 0, fmt.Errorf("unrecognized interpolation %q", s)
	}
}

// ParseBusinessDayConvention maps a business-day convention name. Accepts the
// spec-literal tokens ("FOLLOW", "MODIFIED_FOLLOW") as well as the more
// verbose "FOLLOWING"/"MODIFIEDFOLLOWING" spellings.
func ParseBusinessDayConvention(s string) (daycount.BusinessDayConvention, error) {
	switch normalizeEnum(s) {
	case "", "NONE":
		return daycount.None, nil
	case "FOLLOW", "FOLLOWING":
		return daycount.Following, nil
	case "MODIFIEDFOLLOW", "MODIFIEDFOLLOWING", "MODFOLLOWING":
		return daycount.ModifiedFollowing, nil
	case "PRECEDING":
		return daycount.Preceding, nil
	default:
		return "", fmt.Errorf("unrecognized business_day_convention %q", s)
	}
}

// normalizeEnum upper-cases s and strips the punctuation ("_", "-", "/")
// that separates spec-literal enum tokens from their compact spellings, so
// both "ACT_365F" and "act365f" reach the same switch case.
func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "", "-", "", "/", "").Replace(s)
	return s
}

// FormatDate renders a daycount.Date as "YYYY-MM-DD".
func FormatDate(d daycount.Date) string {
	return d.String()
}
