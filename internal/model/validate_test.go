package model

import (
	"testing"

	"enercast/pkg/types"
)

func validInput() types.FeatureInput {
	return types.FeatureInput{
		Timestamp:      "2026-01-15T14:00:00Z",
		Temperature:    21.5,
		Humidity:       58,
		Renewable:      32.4,
		Hour:           14,
		DayOfWeek:      3,
		Month:          1,
		IsWeekend:      0,
		IsBusinessHour: 1,
	}
}

func TestValidateCleanBatch(t *testing.T) {
	report := Validate([]types.FeatureInput{validInput(), validInput()})
	if !report.Valid {
		t.Fatalf("valid batch rejected: %+v", report.Issues)
	}
	if report.Checked != 2 {
		t.Fatalf("checked=%d", report.Checked)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("issues=%v", report.Issues)
	}
}

func TestValidateRangeIssues(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*types.FeatureInput)
		field string
	}{
		{"hour high", func(f *types.FeatureInput) { f.Hour = 24 }, "hour"},
		{"hour low", func(f *types.FeatureInput) { f.Hour = -1 }, "hour"},
		{"humidity high", func(f *types.FeatureInput) { f.Humidity = 101 }, "humidity"},
		{"renewable low", func(f *types.FeatureInput) { f.Renewable = -0.5 }, "renewable"},
		{"temperature low", func(f *types.FeatureInput) { f.Temperature = -80 }, "temperature"},
		{"day high", func(f *types.FeatureInput) { f.DayOfWeek = 7 }, "day_of_week"},
		{"month zero", func(f *types.FeatureInput) { f.Month = 0 }, "month"},
		{"weekend flag", func(f *types.FeatureInput) { f.IsWeekend = 2 }, "is_weekend"},
		{"business flag", func(f *types.FeatureInput) { f.IsBusinessHour = -1 }, "is_business_hour"},
		{"bad timestamp", func(f *types.FeatureInput) { f.Timestamp = "15/01/2026" }, "timestamp"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := validInput()
			c.mut(&f)
			report := Validate([]types.FeatureInput{f})
			if report.Valid {
				t.Fatalf("accepted invalid input: %+v", f)
			}
			found := false
			for _, iss := range report.Issues {
				if iss.Field == c.field && iss.Index == 0 {
					found = true
				}
			}
			if !found {
				t.Fatalf("no issue for field %q: %+v", c.field, report.Issues)
			}
		})
	}
}

func TestValidateEmptyTimestampAllowed(t *testing.T) {
	f := validInput()
	f.Timestamp = ""
	report := Validate([]types.FeatureInput{f})
	if !report.Valid {
		t.Fatalf("empty timestamp rejected: %+v", report.Issues)
	}
}

func TestValidateCollectsAcrossBatch(t *testing.T) {
	a := validInput()
	a.Hour = 99
	b := validInput()
	b.Month = 13
	report := Validate([]types.FeatureInput{a, b})
	if report.Valid || len(report.Issues) != 2 {
		t.Fatalf("report=%+v", report)
	}
	if report.Issues[0].Index != 0 || report.Issues[1].Index != 1 {
		t.Fatalf("issue indices=%+v", report.Issues)
	}
}
