package types

// Envelope is the uniform success/error wrapper the prediction service puts
// around enveloped responses. GET /api/health is the one bare exception and
// returns HealthStatus directly.
type Envelope struct {
	// True when the call succeeded.
	// example: true
	Success bool `json:"success" example:"true"`
	// Error message, set only when Success is false.
	// example: Model not loaded
	Error string `json:"error,omitempty" example:"Model not loaded"`
}

// HealthStatus is returned by GET /api/health.
type HealthStatus struct {
	// Service liveness, always "healthy" when the endpoint answers.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// True when a model artifact is loaded and predictions are possible.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Server time in RFC 3339.
	// example: 2026-01-15T14:00:03Z
	Timestamp string `json:"timestamp" example:"2026-01-15T14:00:03Z"`
}

// PredictRequest is the payload for POST /api/predict.
type PredictRequest struct {
	// Batch of raw feature records to score, in order.
	Features []FeatureInput `json:"features"`
}

// PredictResponse is returned by POST /api/predict.
type PredictResponse struct {
	Envelope
	// One prediction per request element, same order. Always present on
	// success, even for an empty batch.
	Predictions []PredictionPoint `json:"predictions"`
}

// ValidateRequest is the payload for POST /api/validate.
type ValidateRequest struct {
	// Batch of raw feature records to range-check.
	Features []FeatureInput `json:"features"`
}

// ValidateResponse is returned by POST /api/validate.
type ValidateResponse struct {
	Envelope
	ValidationReport
}

// InfoResponse is returned by GET /api/model/info.
type InfoResponse struct {
	Envelope
	Model *ModelInfo `json:"model,omitempty"`
}

// MetricsResponse is returned by GET /api/metrics.
type MetricsResponse struct {
	Envelope
	Metrics *ModelMetrics `json:"metrics,omitempty"`
}

// ReloadResult reports the outcome of a model reload.
type ReloadResult struct {
	// Outcome description.
	// example: model reloaded
	Message string `json:"message" example:"model reloaded"`
	// Whether a model is loaded after the reload attempt.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Version of the model now loaded, empty when none.
	// example: 1.4.0
	Version string `json:"version,omitempty" example:"1.4.0"`
}

// ReloadResponse is returned by POST /api/model/reload.
type ReloadResponse struct {
	Envelope
	ReloadResult
}
