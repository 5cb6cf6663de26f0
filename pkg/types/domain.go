package types

// FeatureInput is one hour of raw conditions sent to the prediction service.
// Field names and defaults mirror the service's feature schema; the service
// derives lag features and cyclical encodings from these before scoring.
type FeatureInput struct {
	// RFC 3339 timestamp the features describe. Passed through to the
	// matching prediction untouched.
	// example: 2026-01-15T14:00:00Z
	Timestamp string `json:"timestamp,omitempty" example:"2026-01-15T14:00:00Z"`
	// Ambient temperature in °C.
	// example: 21.5
	Temperature float64 `json:"temperature" example:"21.5"`
	// Relative humidity in percent (0-100).
	// example: 58
	Humidity float64 `json:"humidity" example:"58"`
	// Share of renewable generation in percent (0-100).
	// example: 32.4
	Renewable float64 `json:"renewable" example:"32.4"`
	// Hour of day (0-23).
	// example: 14
	Hour int `json:"hour" example:"14"`
	// Day of week (0-6, Monday=0).
	// example: 3
	DayOfWeek int `json:"day_of_week" example:"3"`
	// Month (1-12).
	// example: 1
	Month int `json:"month" example:"1"`
	// 1 when the timestamp falls on Saturday or Sunday, else 0.
	// example: 0
	IsWeekend int `json:"is_weekend" example:"0"`
	// 1 during business hours (Mon-Fri, 08:00-18:00), else 0.
	// example: 1
	IsBusinessHour int `json:"is_business_hour" example:"1"`
}

// PredictionPoint is one scored element of a prediction batch.
type PredictionPoint struct {
	// Position of the source FeatureInput in the request batch.
	// example: 0
	Index int `json:"index" example:"0"`
	// Predicted energy consumption in kWh.
	// example: 54.3
	Predicted float64 `json:"predicted" example:"54.3"`
	// Timestamp echoed from the source FeatureInput.
	// example: 2026-01-15T14:00:00Z
	Timestamp string `json:"timestamp,omitempty" example:"2026-01-15T14:00:00Z"`
}

// ValidationIssue describes a single rejected field within a feature batch.
type ValidationIssue struct {
	// Position of the offending FeatureInput in the batch.
	// example: 2
	Index int `json:"index" example:"2"`
	// Feature field the issue refers to.
	// example: hour
	Field string `json:"field" example:"hour"`
	// Human-readable reason.
	// example: hour must be between 0 and 23
	Message string `json:"message" example:"hour must be between 0 and 23"`
}

// ValidationReport summarizes a validate call over a feature batch.
type ValidationReport struct {
	// True when every element passed all range checks.
	// example: false
	Valid bool `json:"valid" example:"false"`
	// Number of FeatureInput elements checked.
	// example: 24
	Checked int `json:"checked" example:"24"`
	// Issues found, empty when Valid.
	Issues []ValidationIssue `json:"issues"`
}

// ModelMetrics carries the model's stored evaluation scores.
type ModelMetrics struct {
	// Mean absolute error on the evaluation set, kWh.
	// example: 3.21
	MAE float64 `json:"mae" example:"3.21"`
	// Root mean squared error, kWh.
	// example: 4.87
	RMSE float64 `json:"rmse" example:"4.87"`
	// Coefficient of determination.
	// example: 0.93
	R2 float64 `json:"r2" example:"0.93"`
	// Mean absolute percentage error, percent.
	// example: 6.4
	MAPE float64 `json:"mape" example:"6.4"`
	// RFC 3339 time of the last evaluation run.
	// example: 2026-01-10T08:00:00Z
	EvaluatedAt string `json:"evaluated_at,omitempty" example:"2026-01-10T08:00:00Z"`
	// Evaluation sample count.
	// example: 8760
	Samples int `json:"samples,omitempty" example:"8760"`
}

// ModelInfo describes the served model.
type ModelInfo struct {
	// Model family identifier.
	// example: random_forest
	ModelType string `json:"model_type" example:"random_forest"`
	// Version string of the loaded model artifact.
	// example: 1.4.0
	Version string `json:"version" example:"1.4.0"`
	// RFC 3339 training time of the loaded artifact.
	// example: 2026-01-02T00:00:00Z
	TrainedAt string `json:"trained_at,omitempty" example:"2026-01-02T00:00:00Z"`
	// Ordered names of the derived model input features.
	Features []string `json:"features"`
	// Length of the model input vector.
	// example: 16
	NFeatures int `json:"n_features" example:"16"`
}
