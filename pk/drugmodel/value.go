package drugmodel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// ParseTypedValue parses a string value per DataType into the float64
// representation the extraction pipeline computes with: 0/1 for Bool,
// seconds-since-epoch for Date, and the numeric value itself otherwise.
// This generalizes the original extractor's stringToValue helper
// (SPEC_FULL.md section C.4) so it serves patient observation parsing,
// covariate defaults (ParseDefault), and the treatment's birthdate lookup.
func ParseTypedValue(s string, dt DataType) (float64, error) {
	switch dt {
	case Bool:
		lower := strings.ToLower(strings.TrimSpace(s))
		if lower == "0" || lower == "false" {
			return 0, nil
		}
		return 1, nil

	case Int:
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("drugmodel: parse int %q: %w", s, err)
		}
		return float64(v), nil

	case Double:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("drugmodel: parse double %q: %w", s, err)
		}
		return v, nil

	case Date:
		t, err := parseDateLayouts(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("drugmodel: parse date %q: %w", s, err)
		}
		return float64(t.ToSeconds()), nil

	default:
		return 0, fmt.Errorf("drugmodel: unrecognized data type %v", dt)
	}
}

// dateLayouts are tried in order when parsing a Date-typed string value.
var dateLayouts = []string{
	"2006-Jan-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateLayouts(s string) (timeutil.Instant, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return timeutil.FromTime(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return timeutil.Instant{}, firstErr
}
