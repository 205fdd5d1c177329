package models

// IntervalType selects the rolling window used by statistics.
type IntervalType string

const (
	IntervalWeekly  IntervalType = "WEEKLY"
	IntervalMonthly IntervalType = "MONTHLY"
	IntervalYearly  IntervalType = "YEARLY"
)

// Valid reports whether i is a known interval.
func (i IntervalType) Valid() bool {
	switch i {
	case IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}
