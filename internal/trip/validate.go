package trip

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var validVisibility = map[string]bool{
	VisibilityPublic:  true,
	VisibilityPrivate: true,
	VisibilityFriends: true,
}

var validDuration = map[string]bool{
	DurationMultiday:  true,
	DurationDay:       true,
	DurationOvernight: true,
}

var (
	// HTML month input format.
	reYearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	// MM-YYYY and MM-YY, month restricted to 01-12.
	reMonthYear = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4}|\d{2})$`)
)

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// stringValue coerces a raw JSON scalar into a trimmed string. Blank and
// absent values become nil; container shapes are rejected rather than
// silently stringified.
func stringValue(field string, v any) (*string, error) {
	var text string
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		text = val
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		text = strconv.Itoa(val)
	case int64:
		text = strconv.FormatInt(val, 10)
	default:
		return nil, invalid(field, "has an unsupported type")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

func normalizeVisibility(v any) string {
	s, err := stringValue("visibility", v)
	if err != nil || s == nil {
		return VisibilityPublic
	}
	candidate := strings.ToLower(*s)
	if validVisibility[candidate] {
		return candidate
	}
	return VisibilityPublic
}

func normalizeDuration(v any) string {
	s, err := stringValue("duration", v)
	if err != nil || s == nil {
		return DurationMultiday
	}
	if validDuration[*s] {
		return *s
	}
	return DurationMultiday
}

func parseTripDate(v any) (*string, error) {
	candidate, err := stringValue("date", v)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}

	if reYearMonth.MatchString(*candidate) {
		return candidate, nil
	}
	if reMonthYear.MatchString(*candidate) {
		return candidate, nil
	}

	// Allow a friendly free-form month/year and normalize it.
	for _, layout := range []string{"January 2006", "Jan 2006"} {
		if parsed, err := time.Parse(layout, *candidate); err == nil {
			normalized := parsed.Format("2006-01")
			return &normalized, nil
		}
	}

	return nil, invalid("date", "must use YYYY-MM, MM-YYYY, MM-YY, or 'Month YYYY'")
}

func parseThumbnailURL(field string, v any) (*string, error) {
	candidate, err := stringValue(field, v)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}

	lowered := strings.ToLower(*candidate)
	if strings.HasPrefix(lowered, "data:") {
		return nil, invalid(field, "must be an image URL, not base64 data")
	}
	if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
		return nil, invalid(field, "must start with http:// or https://")
	}
	return candidate, nil
}

// parseDecimal parses an exact decimal so money and coordinate values
// never pick up binary float drift. Currency mode strips "$" and ",".
func parseDecimal(field string, v any, min, max *decimal.Decimal, currency bool) (decimal.NullDecimal, error) {
	candidate, err := stringValue(field, v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if candidate == nil {
		return decimal.NullDecimal{}, nil
	}

	normalized := *candidate
	if currency {
		normalized = strings.TrimSpace(currencyStripper.Replace(normalized))
	}

	parsed, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.NullDecimal{}, invalid(field, "must be a valid number")
	}

	if min != nil && parsed.LessThan(*min) {
		return decimal.NullDecimal{}, invalid(field, "must be at least "+min.String())
	}
	if max != nil && parsed.GreaterThan(*max) {
		return decimal.NullDecimal{}, invalid(field, "must be at most "+max.String())
	}

	return decimal.NullDecimal{Decimal: parsed, Valid: true}, nil
}

var (
	latMin  = decimal.NewFromInt(-90)
	latMax  = decimal.NewFromInt(90)
	lngMin  = decimal.NewFromInt(-180)
	lngMax  = decimal.NewFromInt(180)
	costMin = decimal.NewFromInt(0)
)

func parseLatitude(field string, v any) (decimal.NullDecimal, error) {
	return parseDecimal(field, v, &latMin, &latMax, false)
}

func parseLongitude(field string, v any) (decimal.NullDecimal, error) {
	return parseDecimal(field, v, &lngMin, &lngMax, false)
}

func parseCost(field string, v any) (decimal.NullDecimal, error) {
	return parseDecimal(field, v, &costMin, nil, true)
}
