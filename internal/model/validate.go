package model

import (
	"fmt"
	"time"

	"enercast/pkg/types"
)

// Plausibility bounds for raw feature values. Temperature limits are wide on
// purpose: the dashboard serves sites from arctic to desert climates.
const (
	MinTemperature = -40.0
	MaxTemperature = 60.0
)

// Validate range-checks a feature batch as given, without applying schema
// defaults: a validator that silently fills gaps would hide exactly the
// problems callers ask it to find.
func Validate(features []types.FeatureInput) types.ValidationReport {
	report := types.ValidationReport{
		Valid:   true,
		Checked: len(features),
		Issues:  []types.ValidationIssue{},
	}
	add := func(i int, field, msg string) {
		report.Valid = false
		report.Issues = append(report.Issues, types.ValidationIssue{Index: i, Field: field, Message: msg})
	}
	for i, f := range features {
		if f.Temperature < MinTemperature || f.Temperature > MaxTemperature {
			add(i, "temperature", fmt.Sprintf("temperature must be between %g and %g", MinTemperature, MaxTemperature))
		}
		if f.Humidity < 0 || f.Humidity > 100 {
			add(i, "humidity", "humidity must be between 0 and 100")
		}
		if f.Renewable < 0 || f.Renewable > 100 {
			add(i, "renewable", "renewable must be between 0 and 100")
		}
		if f.Hour < 0 || f.Hour > 23 {
			add(i, "hour", "hour must be between 0 and 23")
		}
		if f.DayOfWeek < 0 || f.DayOfWeek > 6 {
			add(i, "day_of_week", "day_of_week must be between 0 and 6")
		}
		if f.Month < 1 || f.Month > 12 {
			add(i, "month", "month must be between 1 and 12")
		}
		if f.IsWeekend != 0 && f.IsWeekend != 1 {
			add(i, "is_weekend", "is_weekend must be 0 or 1")
		}
		if f.IsBusinessHour != 0 && f.IsBusinessHour != 1 {
			add(i, "is_business_hour", "is_business_hour must be 0 or 1")
		}
		if f.Timestamp != "" {
			if _, err := time.Parse(time.RFC3339, f.Timestamp); err != nil {
				add(i, "timestamp", "timestamp must be RFC 3339")
			}
		}
	}
	return report
}
