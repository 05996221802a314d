package models

import "fmt"

// Quote is the terminal artifact of a wizard session. It is produced at most
// once per session and is never recomputed afterwards.
//
// Monetary amounts are fixed-point US dollar cents to avoid floating point
// rounding in currency display.
type Quote struct {
	PlanName            string
	MonthlyPremiumCents int64
	DeductibleCents     int64
	OutOfPocketMaxCents int64
	CoverageType        string
	NetworkType         string
	Benefits            []string
}

// FormatCents renders dollar cents as a display string, e.g. 28500 -> "$285.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func (q Quote) MonthlyPremium() string {
	return FormatCents(q.MonthlyPremiumCents)
}

func (q Quote) Deductible() string {
	return FormatCents(q.DeductibleCents)
}

func (q Quote) OutOfPocketMax() string {
	return FormatCents(q.OutOfPocketMaxCents)
}
