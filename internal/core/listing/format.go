package listing

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects a display transform for a column. Formatters are a closed
// set so no executable code crosses the component boundary.
type Format int

const (
	FormatNone Format = iota
	FormatCurrency
	FormatDate
	FormatBadge
	FormatTruncate
)

const truncateWidth = 40

var currencyPrinter = message.NewPrinter(language.English)

// FormatValue renders a record value for display according to the column's
// formatter. Missing values render as an empty string.
func FormatValue(col Column, v any) string {
	if v == nil {
		return ""
	}

	switch col.Format {
	case FormatCurrency:
		if f, ok := toNumber(v); ok {
			return currencyPrinter.Sprintf("₹%.2f", f)
		}
	case FormatDate:
		switch t := v.(type) {
		case time.Time:
			return t.Format("02 Jan 2006")
		case string:
			if parsed, err := time.Parse(time.RFC3339, t); err == nil {
				return parsed.Format("02 Jan 2006")
			}
		}
	case FormatBadge:
		if s, ok := stringify(v); ok {
			return badgeLabel(s)
		}
	case FormatTruncate:
		if s, ok := stringify(v); ok {
			return truncate(s, truncateWidth)
		}
	}

	s, _ := stringify(v)
	return s
}

// badgeLabel maps a status value to its badge text.
func badgeLabel(status string) string {
	switch status {
	case "active":
		return "Active"
	case "draft":
		return "Draft"
	case "archived":
		return "Archived"
	case "out-of-stock":
		return "Out of Stock"
	default:
		return status
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + "…"
}
