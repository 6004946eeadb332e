package entity

// Metric labels used in the projection summary and its export.
const (
	MetricPredictedReferrals      = "Predicted Referrals"
	MetricBacklogReduction        = "Backlog Reduction"
	MetricTotalAppointmentsNeeded = "Total Appointments Needed"
)

// Category labels for the two bar charts on the planning page.
const (
	CategoryFirstAppointments    = "First Appointments"
	CategoryFollowUpAppointments = "Follow-Up Appointments"
	CategoryDischarges           = "Discharges"
)

// GrowthAssumption is the expected referral growth in whole percent.
type GrowthAssumption int

const (
	MinGrowthRate GrowthAssumption = 0
	MaxGrowthRate GrowthAssumption = 50
)

func (g GrowthAssumption) Valid() bool {
	return g >= MinGrowthRate && g <= MaxGrowthRate
}

// Multiplier returns 1 + g/100.
func (g GrowthAssumption) Multiplier() float64 {
	return 1 + float64(g)/100
}

// BacklogTarget is the number of waiting patients to clear next year.
type BacklogTarget int

func (b BacklogTarget) Valid() bool {
	return b >= 0
}

// ReferralPrediction is the output of the referral predictor.
type ReferralPrediction struct {
	LastYearReferrals  float64
	PredictedReferrals float64
	GrowthRate         GrowthAssumption
}

// ActivityTotals are the historical sums over a filtered table.
type ActivityTotals struct {
	Referrals            float64
	FirstAppointments    float64
	FollowUpAppointments float64
	Discharges           float64
}

// PercentChange is a percentage that may be undefined. Kind tells the
// summary row which rendering applies.
type PercentChange struct {
	Kind  PercentChangeKind
	Value float64
}

type PercentChangeKind int

const (
	// PercentNotApplicable marks rows that never carry a percentage.
	PercentNotApplicable PercentChangeKind = iota
	// PercentComputed carries a value derived from the data.
	PercentComputed
	// PercentUndefined marks a computed percentage whose baseline was zero.
	PercentUndefined
	// PercentGrowthRate echoes the growth assumption.
	PercentGrowthRate
)

func (p PercentChange) Defined() bool {
	return p.Kind == PercentComputed || p.Kind == PercentGrowthRate
}

// SummaryLine is one row of the projection summary table.
type SummaryLine struct {
	Metric           string
	Total            float64
	PercentageChange PercentChange
}

// CategoryValue is a single bar of a bar chart.
type CategoryValue struct {
	Category string
	Value    float64
}

// ProjectionSummary is everything the capacity planner derives.
type ProjectionSummary struct {
	PredictedReferrals      float64
	BacklogReduction        BacklogTarget
	TotalAppointmentsNeeded float64
	PercentageChange        PercentChange
	LastYear                ActivityTotals
	Lines                   []SummaryLine
	LastYearCategories      []CategoryValue
	ProjectionCategories    []CategoryValue
}
