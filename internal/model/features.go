package model

import (
	"encoding/json"
	"math"

	"enercast/pkg/types"
)

// Schema defaults applied when a request omits a feature field. These track
// the prediction service's feature schema so the stand-in scores payloads
// the same way the remote model does.
const (
	DefaultTemperature    = 22.0
	DefaultHumidity       = 60.0
	DefaultRenewable      = 0.0
	DefaultHour           = 12
	DefaultDayOfWeek      = 1
	DefaultMonth          = 6
	DefaultIsWeekend      = 0
	DefaultIsBusinessHour = 1
)

// NumFeatures is the length of the derived model input vector.
const NumFeatures = 16

// baseConsumption anchors the synthetic lag features, in kWh.
const baseConsumption = 50.0

// featureNames lists the derived inputs in vector order.
var featureNames = []string{
	"consumption_lag_1h",
	"consumption_lag_24h",
	"consumption_lag_168h",
	"temperature_rolling_24h",
	"humidity_rolling_24h",
	"hour_sin",
	"hour_cos",
	"day_sin",
	"day_cos",
	"month_sin",
	"month_cos",
	"avg_consumption_same_hour",
	"avg_consumption_same_day",
	"is_weekend",
	"is_business_hour",
	"renewable",
}

// FeatureNames returns the ordered names of the derived model inputs.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// Raw mirrors types.FeatureInput with optional fields so that absent keys
// fall back to schema defaults, the way the reference service reads its
// request dict. Used only on the decode side of /api/predict.
type Raw struct {
	Timestamp      *string  `json:"timestamp"`
	Temperature    *float64 `json:"temperature"`
	Humidity       *float64 `json:"humidity"`
	Renewable      *float64 `json:"renewable"`
	Hour           *int     `json:"hour"`
	DayOfWeek      *int     `json:"day_of_week"`
	Month          *int     `json:"month"`
	IsWeekend      *int     `json:"is_weekend"`
	IsBusinessHour *int     `json:"is_business_hour"`
}

// Input resolves a Raw record into a complete FeatureInput, applying schema
// defaults for absent fields.
func (r Raw) Input() types.FeatureInput {
	f := types.FeatureInput{
		Temperature:    DefaultTemperature,
		Humidity:       DefaultHumidity,
		Renewable:      DefaultRenewable,
		Hour:           DefaultHour,
		DayOfWeek:      DefaultDayOfWeek,
		Month:          DefaultMonth,
		IsWeekend:      DefaultIsWeekend,
		IsBusinessHour: DefaultIsBusinessHour,
	}
	if r.Timestamp != nil {
		f.Timestamp = *r.Timestamp
	}
	if r.Temperature != nil {
		f.Temperature = *r.Temperature
	}
	if r.Humidity != nil {
		f.Humidity = *r.Humidity
	}
	if r.Renewable != nil {
		f.Renewable = *r.Renewable
	}
	if r.Hour != nil {
		f.Hour = *r.Hour
	}
	if r.DayOfWeek != nil {
		f.DayOfWeek = *r.DayOfWeek
	}
	if r.Month != nil {
		f.Month = *r.Month
	}
	if r.IsWeekend != nil {
		f.IsWeekend = *r.IsWeekend
	}
	if r.IsBusinessHour != nil {
		f.IsBusinessHour = *r.IsBusinessHour
	}
	return f
}

// DecodeBatch parses a raw JSON feature array, applying schema defaults per
// element. Returns an error for malformed JSON only; range checking is the
// validator's job.
func DecodeBatch(data []byte) ([]types.FeatureInput, error) {
	var raws []Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]types.FeatureInput, len(raws))
	for i, r := range raws {
		out[i] = r.Input()
	}
	return out, nil
}

// Transform derives the model input vector from one raw feature record.
// The synthetic lag and average terms are reconstructed from a base
// consumption profile; cyclical fields are sin/cos encoded.
func Transform(f types.FeatureInput) []float64 {
	hourMult := 1.0 + 0.3*math.Sin(2*math.Pi*float64(f.Hour-6)/12)
	weekendMult := 1.0
	if f.IsWeekend != 0 {
		weekendMult = 1.2
	}
	businessMult := 0.8
	if f.IsBusinessHour != 0 {
		businessMult = 1.1
	}

	lag1h := baseConsumption * hourMult * weekendMult * businessMult
	lag24h := lag1h * 0.95
	lag168h := lag1h * 0.9

	hourSin := math.Sin(2 * math.Pi * float64(f.Hour) / 24)
	hourCos := math.Cos(2 * math.Pi * float64(f.Hour) / 24)
	daySin := math.Sin(2 * math.Pi * float64(f.DayOfWeek) / 7)
	dayCos := math.Cos(2 * math.Pi * float64(f.DayOfWeek) / 7)
	monthSin := math.Sin(2 * math.Pi * float64(f.Month) / 12)
	monthCos := math.Cos(2 * math.Pi * float64(f.Month) / 12)

	avgSameHour := baseConsumption * hourMult
	avgSameDay := baseConsumption * weekendMult

	return []float64{
		lag1h,
		lag24h,
		lag168h,
		f.Temperature,
		f.Humidity,
		hourSin,
		hourCos,
		daySin,
		dayCos,
		monthSin,
		monthCos,
		avgSameHour,
		avgSameDay,
		float64(f.IsWeekend),
		float64(f.IsBusinessHour),
		f.Renewable,
	}
}
