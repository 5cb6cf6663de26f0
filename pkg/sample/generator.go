// Package sample synthesizes hourly feature series for offline use. The
// output matches the shape the prediction service accepts, so dashboards
// and tests can run without any live data source.
package sample

import (
	"math"
	"math/rand"
	"time"

	"enercast/pkg/types"
)

const (
	defaultHours         = 24
	defaultBaseTemp      = 18.0
	defaultBaseHumidity  = 65.0
	defaultPeakRenewable = 45.0

	tempSwing        = 6.0 // peak-to-mean diurnal amplitude, °C
	humidityCoupling = 0.8 // percent humidity lost per °C above the mean

	tempJitter      = 1.5
	humidityJitter  = 4.0
	renewableJitter = 3.0
)

// Options controls a synthesized series. The zero value produces 24 hours
// of temperate-climate data starting at the current hour.
type Options struct {
	// First hour of the series. Zero means the current hour, UTC.
	Start time.Time
	// Number of hourly points. Zero or negative means 24.
	Hours int
	// Seed for the noise source. The same Options produce the same series.
	Seed int64
	// Daily mean temperature in °C. Zero means 18.
	BaseTemperature float64
	// Mean relative humidity in percent. Zero means 65.
	BaseHumidity float64
	// Midday renewable-share ceiling in percent. Zero means 45.
	PeakRenewable float64
}

func (o Options) withDefaults() Options {
	if o.Start.IsZero() {
		o.Start = time.Now().UTC().Truncate(time.Hour)
	}
	if o.Hours <= 0 {
		o.Hours = defaultHours
	}
	if o.BaseTemperature == 0 {
		o.BaseTemperature = defaultBaseTemp
	}
	if o.BaseHumidity == 0 {
		o.BaseHumidity = defaultBaseHumidity
	}
	if o.PeakRenewable == 0 {
		o.PeakRenewable = defaultPeakRenewable
	}
	return o
}

// Features returns a seeded hourly series of opts.Hours points starting at
// opts.Start. Temperature follows a sine peaking mid-afternoon, humidity
// moves inversely to it, and the renewable share follows a solar bell
// between 06:00 and 20:00. Calendar fields use the service's conventions:
// Monday is day 0, weekends are Saturday and Sunday, business hours are
// Mon-Fri 08:00-18:00.
func Features(opts Options) []types.FeatureInput {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	out := make([]types.FeatureInput, 0, opts.Hours)
	for i := 0; i < opts.Hours; i++ {
		out = append(out, point(opts.Start.Add(time.Duration(i)*time.Hour), opts, rng))
	}
	return out
}

// At synthesizes the single point covering ts. The seed derives from the
// hour itself, so any instant within the same hour yields the same point.
func At(ts time.Time) types.FeatureInput {
	hour := ts.Truncate(time.Hour)
	return Features(Options{Start: hour, Hours: 1, Seed: hour.Unix()})[0]
}

func point(ts time.Time, opts Options, rng *rand.Rand) types.FeatureInput {
	// Draw all noise up front so the stream position does not depend on
	// the hour of day.
	tNoise := jitter(rng, tempJitter)
	hNoise := jitter(rng, humidityJitter)
	rNoise := jitter(rng, renewableJitter)

	hour := ts.Hour()
	dow := mondayIndex(ts.Weekday())
	weekend := dow >= 5
	business := !weekend && hour >= 8 && hour <= 18

	// Warmest around 15:00, coldest around 03:00.
	temperature := opts.BaseTemperature + tempSwing*math.Sin(2*math.Pi*float64(hour-9)/24) + tNoise
	humidity := clamp(opts.BaseHumidity-humidityCoupling*(temperature-opts.BaseTemperature)+hNoise, 0, 100)

	renewable := 0.0
	if hour >= 6 && hour <= 20 {
		renewable = clamp(opts.PeakRenewable*math.Sin(math.Pi*float64(hour-6)/14)+rNoise, 0, 100)
	}

	return types.FeatureInput{
		Timestamp:      ts.UTC().Format(time.RFC3339),
		Temperature:    round1(temperature),
		Humidity:       round1(humidity),
		Renewable:      round1(renewable),
		Hour:           hour,
		DayOfWeek:      dow,
		Month:          int(ts.Month()),
		IsWeekend:      flag(weekend),
		IsBusinessHour: flag(business),
	}
}

// mondayIndex maps Go's Sunday=0 weekday onto the Monday=0 scheme the
// prediction service expects.
func mondayIndex(w time.Weekday) int { return (int(w) + 6) % 7 }

func jitter(rng *rand.Rand, scale float64) float64 { return (rng.Float64()*2 - 1) * scale }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
