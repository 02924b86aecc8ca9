package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const sourceTimeout = 15 * time.Second

// FormatAmount formats an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func FormatProgress(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// SourceCtx returns a context with a standard timeout for source reads.
func SourceCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sourceTimeout)
}
