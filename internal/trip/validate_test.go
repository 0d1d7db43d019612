package trip

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStringValue(t *testing.T) {
	if v, err := stringValue("title", "  Iceland  "); err != nil || v == nil || *v != "Iceland" {
		t.Fatalf("expected trimmed string, got %v %v", v, err)
	}
	if v, err := stringValue("title", "   "); err != nil || v != nil {
		t.Fatalf("expected blank to become nil")
	}
	if v, err := stringValue("title", nil); err != nil || v != nil {
		t.Fatalf("expected nil to stay nil")
	}
	if v, err := stringValue("cost", float64(200)); err != nil || v == nil || *v != "200" {
		t.Fatalf("expected number to stringify, got %v %v", v, err)
	}
	if _, err := stringValue("title", map[string]any{}); err == nil {
		t.Fatalf("expected error for object value")
	}
}

func TestNormalizeVisibility(t *testing.T) {
	if got := normalizeVisibility("PRIVATE"); got != VisibilityPrivate {
		t.Fatalf("expected lower-cased private, got %q", got)
	}
	if got := normalizeVisibility("friends"); got != VisibilityFriends {
		t.Fatalf("expected friends, got %q", got)
	}
	if got := normalizeVisibility("everyone"); got != VisibilityPublic {
		t.Fatalf("expected fallback to public, got %q", got)
	}
	if got := normalizeVisibility(nil); got != VisibilityPublic {
		t.Fatalf("expected default public, got %q", got)
	}
}

func TestNormalizeDuration(t *testing.T) {
	if got := normalizeDuration("day trip"); got != DurationDay {
		t.Fatalf("expected day trip, got %q", got)
	}
	if got := normalizeDuration("forever trip"); got != DurationMultiday {
		t.Fatalf("expected fallback to multiday, got %q", got)
	}
	if got := normalizeDuration(nil); got != DurationMultiday {
		t.Fatalf("expected default multiday, got %q", got)
	}
}

func TestParseTripDate(t *testing.T) {
	cases := map[string]string{
		"2024-03":       "2024-03",
		"03-2024":       "03-2024",
		"03-24":         "03-24",
		"March 2024":    "2024-03",
		"Mar 2024":      "2024-03",
		"December 1999": "1999-12",
	}
	for input, want := range cases {
		got, err := parseTripDate(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got == nil || *got != want {
			t.Fatalf("parse %q: got %v want %q", input, got, want)
		}
	}

	if got, err := parseTripDate(nil); err != nil || got != nil {
		t.Fatalf("expected nil date to pass through")
	}

	for _, input := range []string{"13-2024", "00-2024", "March", "2024", "next summer"} {
		if _, err := parseTripDate(input); err == nil {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestParseThumbnailURL(t *testing.T) {
	if got, err := parseThumbnailURL("thumbnail_url", "https://cdn.example/img.webp"); err != nil || got == nil {
		t.Fatalf("expected https url to pass: %v", err)
	}
	if got, err := parseThumbnailURL("thumbnail_url", nil); err != nil || got != nil {
		t.Fatalf("expected absent url to pass as nil")
	}
	if _, err := parseThumbnailURL("thumbnail_url", "data:image/png;base64,AAAA"); err == nil {
		t.Fatalf("expected data uri rejection")
	}
	if _, err := parseThumbnailURL("thumbnail_url", "ftp://example/img.png"); err == nil {
		t.Fatalf("expected non-http rejection")
	}
}

func TestParseCost(t *testing.T) {
	got, err := parseCost("cost", "$1,234.50")
	if err != nil {
		t.Fatalf("parse currency: %v", err)
	}
	if !got.Valid || !got.Decimal.Equal(decimal.RequireFromString("1234.50")) {
		t.Fatalf("expected exact 1234.50, got %v", got)
	}

	if _, err := parseCost("cost", "-1"); err == nil {
		t.Fatalf("expected negative cost rejection")
	}
	if _, err := parseCost("cost", "free"); err == nil {
		t.Fatalf("expected non-number rejection")
	}
	if got, err := parseCost("cost", nil); err != nil || got.Valid {
		t.Fatalf("expected absent cost to stay null")
	}
}

func TestParseLatitudeBounds(t *testing.T) {
	for _, ok := range []any{float64(90), float64(-90), "45.5", float64(0)} {
		if _, err := parseLatitude("latitude", ok); err != nil {
			t.Fatalf("expected %v accepted: %v", ok, err)
		}
	}
	for _, bad := range []any{float64(90.0001), "-90.0001", "91"} {
		if _, err := parseLatitude("latitude", bad); err == nil {
			t.Fatalf("expected %v rejected", bad)
		}
	}
}

func TestParseLongitudeBounds(t *testing.T) {
	if _, err := parseLongitude("longitude", float64(180)); err != nil {
		t.Fatalf("expected 180 accepted: %v", err)
	}
	if _, err := parseLongitude("longitude", float64(-180.5)); err == nil {
		t.Fatalf("expected -180.5 rejected")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := parseLatitude("lodgings[1].latitude", "95")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "lodgings[1].latitude must be at most 90" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
