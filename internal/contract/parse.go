package contract

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
}

// ParseAmount parses a loosely formatted amount ("1200", "1e3", "1.234,56",
// "1,234.56", "€ 80"). Anything that cannot be read as a number yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}

	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}

		return r
	}, s)

	if clean == "" || strings.ContainsFunc(clean, notAmountRune) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(normalizeSeparators(clean))
	if err != nil {
		return decimal.Zero
	}

	return d
}

func notAmountRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != ',' && r != '-' && r != '+'
}

// normalizeSeparators rewrites thousands and decimal separators so the
// result only uses '.' as the decimal point. A lone comma followed by exactly
// three digits is a thousands separator ("1,500"); any other lone comma is
// the decimal point ("12,50").
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		// Whichever separator comes last is the decimal point.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case commas == 1:
		if thousandsGroup(s, strings.IndexByte(s, ',')) {
			return strings.Replace(s, ",", "", 1)
		}

		return strings.Replace(s, ",", ".", 1)
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}

// thousandsGroup reports whether the separator at i has digits before it and
// exactly three digits after it.
func thousandsGroup(s string, i int) bool {
	head := strings.TrimLeft(s[:i], "+-")

	return head != "" && len(s)-i-1 == 3
}

// ParseDate parses a calendar date in any of the formats the backend has
// used over time. Unparseable input yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// wallClock reads the clock face of t as if it were UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// dayOf drops the clock part of t, keeping its own calendar date.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
