package tui

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// money renders whole currency units with digit grouping, e.g. $450,000.
func money(symbol string, n int64) string {
	if n < 0 {
		return "-" + symbol + printer.Sprintf("%d", -n)
	}
	return symbol + printer.Sprintf("%d", n)
}

func optMoney(symbol string, n *int64) string {
	if n == nil {
		return "N/A"
	}
	return money(symbol, *n)
}

func optInt(n *int) string {
	if n == nil {
		return "-"
	}
	return printer.Sprintf("%d", *n)
}

func number(n int) string { return printer.Sprintf("%d", n) }

// statusLabel turns "in-progress" into "In Progress".
func statusLabel(s string) string {
	return titler.String(strings.ReplaceAll(s, "-", " "))
}

// formatDate renders a calendar date. Catalog dates carry no zone, so they
// are never converted.
func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(layout)
}
