package mlapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercast/pkg/types"
)

func testClient(srv *httptest.Server, mut ...func(*Config)) *Client {
	cfg := Config{BaseURL: srv.URL, Enabled: true, HTTPClient: srv.Client()}
	for _, m := range mut {
		m(&cfg)
	}
	return New(cfg)
}

func TestHealthSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/health", r.URL.Path)
		err := json.NewEncoder(w).Encode(types.HealthStatus{
			Status:      "healthy",
			ModelLoaded: true,
			Timestamp:   "2026-01-15T14:00:03Z",
		})
		assert.NoError(t, err)
	}))
	defer srv.Close()

	st, err := testClient(srv).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", st.Status)
	assert.True(t, st.ModelLoaded)
}

func TestHealthSendsAuthAndUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		assert.Equal(t, "enercast-mlapi/1", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode(types.HealthStatus{Status: "healthy"})
	}))
	defer srv.Close()

	c := testClient(srv, func(cfg *Config) { cfg.APIKey = "s3cret" })
	_, err := c.Health(context.Background())
	require.NoError(t, err)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.HealthStatus{Status: "healthy", ModelLoaded: true})
	}))
	c := testClient(srv)
	assert.True(t, c.Available(context.Background()))

	srv.Close()
	assert.False(t, c.Available(context.Background()))
}

func TestUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := testClient(srv)
	srv.Close()

	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeUnreachable, e.Code)
	assert.Equal(t, 0, e.Status)
}

func TestModelInfoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/model/info", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.InfoResponse{
			Envelope: types.Envelope{Success: true},
			Model: &types.ModelInfo{
				ModelType: "random_forest",
				Version:   "1.4.0",
				Features:  []string{"consumption_lag_1h"},
				NFeatures: 16,
			},
		})
	}))
	defer srv.Close()

	info, err := testClient(srv).ModelInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "random_forest", info.ModelType)
	assert.Equal(t, 16, info.NFeatures)
}

func TestEnvelopeFailureOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.InfoResponse{
			Envelope: types.Envelope{Success: false, Error: "metadata store offline"},
		})
	}))
	defer srv.Close()

	_, err := testClient(srv).ModelInfo(context.Background())
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeRemote, e.Code)
	assert.Equal(t, "metadata store offline", e.Message)
	assert.Equal(t, http.StatusOK, e.Status)
}

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req types.PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Features, 2)
		assert.Equal(t, 14, req.Features[0].Hour)

		_ = json.NewEncoder(w).Encode(types.PredictResponse{
			Envelope: types.Envelope{Success: true},
			Predictions: []types.PredictionPoint{
				{Index: 0, Predicted: 54.3, Timestamp: "2026-01-15T14:00:00Z"},
				{Index: 1, Predicted: 51.8, Timestamp: "2026-01-15T15:00:00Z"},
			},
		})
	}))
	defer srv.Close()

	preds, err := testClient(srv).Predict(context.Background(), []types.FeatureInput{
		{Hour: 14, Temperature: 21.5, Timestamp: "2026-01-15T14:00:00Z"},
		{Hour: 15, Temperature: 22.0, Timestamp: "2026-01-15T15:00:00Z"},
	})
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, 0, preds[0].Index)
	assert.InDelta(t, 54.3, preds[0].Predicted, 1e-9)
	assert.Equal(t, "2026-01-15T15:00:00Z", preds[1].Timestamp)
}

func TestPredictNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(types.Envelope{Success: false, Error: "Model not loaded"})
	}))
	defer srv.Close()

	_, err := testClient(srv).Predict(context.Background(), []types.FeatureInput{{Hour: 1}})
	require.Error(t, err)
	assert.True(t, IsNotReady(err))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
	assert.Equal(t, "Model not loaded", e.Message)
}

func TestPredictBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(types.Envelope{Success: false, Error: "Invalid request"})
	}))
	defer srv.Close()

	_, err := testClient(srv).Predict(context.Background(), nil)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeBadRequest, e.Code)
	assert.Equal(t, "Invalid request", e.Message)
}

func TestPredictTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(types.PredictResponse{Envelope: types.Envelope{Success: true}})
	}))
	defer srv.Close()

	c := testClient(srv, func(cfg *Config) { cfg.PredictTimeout = 50 * time.Millisecond })
	_, err := c.Predict(context.Background(), []types.FeatureInput{{Hour: 1}})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestPredictEmptyPredictionsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.PredictResponse{Envelope: types.Envelope{Success: true}})
	}))
	defer srv.Close()

	preds, err := testClient(srv).Predict(context.Background(), []types.FeatureInput{})
	require.NoError(t, err)
	assert.NotNil(t, preds)
	assert.Len(t, preds, 0)
}

func TestPredictOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.PredictRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		require.Len(t, req.Features, 1)
		_ = json.NewEncoder(w).Encode(types.PredictResponse{
			Envelope:    types.Envelope{Success: true},
			Predictions: []types.PredictionPoint{{Index: 0, Predicted: 47.1}},
		})
	}))
	defer srv.Close()

	p, err := testClient(srv).PredictOne(context.Background(), types.FeatureInput{Hour: 9})
	require.NoError(t, err)
	assert.InDelta(t, 47.1, p.Predicted, 1e-9)
}

func TestValidateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/validate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.ValidateResponse{
			Envelope: types.Envelope{Success: true},
			ValidationReport: types.ValidationReport{
				Valid:   false,
				Checked: 2,
				Issues: []types.ValidationIssue{
					{Index: 1, Field: "hour", Message: "hour must be between 0 and 23"},
				},
			},
		})
	}))
	defer srv.Close()

	report, err := testClient(srv).Validate(context.Background(), []types.FeatureInput{{Hour: 1}, {Hour: 99}})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "hour", report.Issues[0].Field)
}

func TestModelMetricsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/metrics", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.MetricsResponse{
			Envelope: types.Envelope{Success: true},
			Metrics:  &types.ModelMetrics{MAE: 3.21, RMSE: 4.87, R2: 0.93, Samples: 8760},
		})
	}))
	defer srv.Close()

	m, err := testClient(srv).ModelMetrics(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.93, m.R2, 1e-9)
	assert.Equal(t, 8760, m.Samples)
}

func TestReloadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/model/reload", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.ReloadResponse{
			Envelope:     types.Envelope{Success: true},
			ReloadResult: types.ReloadResult{Message: "model reloaded", ModelLoaded: true, Version: "2.0.0"},
		})
	}))
	defer srv.Close()

	res, err := testClient(srv).Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, res.ModelLoaded)
	assert.Equal(t, "2.0.0", res.Version)
}

func TestDecodeErrorOnGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv).ModelInfo(context.Background())
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeDecode, e.Code)
}

func TestDisabledClientShortCircuits(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := testClient(srv, func(cfg *Config) { cfg.Enabled = false })
	ctx := context.Background()

	_, healthErr := c.Health(ctx)
	_, infoErr := c.ModelInfo(ctx)
	_, predictErr := c.Predict(ctx, []types.FeatureInput{{Hour: 1}})
	_, validateErr := c.Validate(ctx, []types.FeatureInput{{Hour: 1}})
	_, metricsErr := c.ModelMetrics(ctx)
	_, reloadErr := c.Reload(ctx)

	for _, err := range []error{healthErr, infoErr, predictErr, validateErr, metricsErr, reloadErr} {
		require.Error(t, err)
		assert.True(t, IsDisabled(err))
	}
	assert.False(t, c.Available(ctx))
	assert.Equal(t, int64(0), hits.Load(), "disabled client must not touch the network")
}

func TestBaseURLNormalized(t *testing.T) {
	c := New(Config{BaseURL: "http://svc.local/"})
	assert.Equal(t, "http://svc.local", c.BaseURL())
	assert.False(t, c.Enabled())
}

func TestErrorString(t *testing.T) {
	e := &Error{Op: "predict", Code: CodeNotReady, Status: 503, Message: "Model not loaded"}
	assert.Equal(t, "mlapi predict: not_ready (http 503): Model not loaded", e.Error())

	e = &Error{Op: "health", Code: CodeDisabled, Message: "prediction service integration disabled"}
	assert.Equal(t, "mlapi health: disabled: prediction service integration disabled", e.Error())
}
