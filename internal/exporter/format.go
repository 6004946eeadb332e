package exporter

import (
	"strconv"

	"outpatient-planner/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// NotApplicable is written wherever a percentage does not apply or could not
// be computed.
const NotApplicable = "N/A"

// FormatPercentChange renders a summary percentage the way the planning
// table shows it: the growth echo as a whole percent, computed values with
// two decimals.
func FormatPercentChange(p entity.PercentChange) string {
	switch p.Kind {
	case entity.PercentGrowthRate:
		return strconv.FormatFloat(p.Value, 'f', -1, 64) + "%"
	case entity.PercentComputed:
		return decimal.NewFromFloat(p.Value).StringFixed(2) + "%"
	}
	return NotApplicable
}

// FormatTotal renders a total with the shortest decimal that reads back to
// the same float.
func FormatTotal(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// RoundTotal rounds a total for display; computations keep full precision.
func RoundTotal(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}
