package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enercast/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Health() types.HealthStatus
	Info() (types.ModelInfo, error)
	Predict(ctx context.Context, raw json.RawMessage) ([]types.PredictionPoint, error)
	Validate(raw json.RawMessage) (types.ValidationReport, error)
	ModelMetrics() (types.ModelMetrics, error)
	Reload(ctx context.Context) (types.ReloadResult, error)
}

// featuresBody is the shared request shape of the predict and validate
// endpoints. Features stays raw so the service controls decoding.
type featuresBody struct {
	Features json.RawMessage `json:"features"`
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	r.Use(rateLimit)
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(svc))
		r.Get("/model/info", handleModelInfo(svc))
		r.Post("/predict", handlePredict(svc))
		r.Post("/validate", handleValidate(svc))
		r.Get("/metrics", handleModelMetrics(svc))
		r.Post("/model/reload", handleReload(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Health().ModelLoaded {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("degraded"))
	})

	r.Get("/docs", handleDocs())

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleHealth godoc
// @Summary      Health check
// @Description  Liveness and model state. The one response without an envelope.
// @Tags         service
// @Produce      json
// @Success      200  {object}  types.HealthStatus
// @Router       /api/health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	}
}

// handleModelInfo godoc
// @Summary      Model description
// @Description  Type, version and derived input features of the loaded model.
// @Tags         model
// @Produce      json
// @Success      200  {object}  types.InfoResponse
// @Failure      503  {object}  types.Envelope "No model loaded"
// @Router       /api/model/info [get]
func handleModelInfo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.Info()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.InfoResponse{
			Envelope: types.Envelope{Success: true},
			Model:    &info,
		})
	}
}

// handlePredict godoc
// @Summary      Batch predictions
// @Description  Scores each element of the feature batch in request order. Absent fields take the service defaults.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        body body types.PredictRequest true "feature batch"
// @Success      200  {object}  types.PredictResponse
// @Failure      400  {object}  types.Envelope "Missing or malformed features"
// @Failure      503  {object}  types.Envelope "No model loaded"
// @Router       /api/predict [post]
func handlePredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := decodeFeatures(w, r)
		if !ok {
			return
		}
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		preds, err := svc.Predict(ctx, raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.PredictResponse{
			Envelope:    types.Envelope{Success: true},
			Predictions: preds,
		})
	}
}

// handleValidate godoc
// @Summary      Validate a feature batch
// @Description  Range-checks the batch exactly as given, without scoring it. Available even while no model is loaded.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        body body types.ValidateRequest true "feature batch"
// @Success      200  {object}  types.ValidateResponse
// @Failure      400  {object}  types.Envelope "Missing or malformed features"
// @Router       /api/validate [post]
func handleValidate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := decodeFeatures(w, r)
		if !ok {
			return
		}
		report, err := svc.Validate(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ValidateResponse{
			Envelope:         types.Envelope{Success: true},
			ValidationReport: report,
		})
	}
}

// handleModelMetrics godoc
// @Summary      Model evaluation metrics
// @Description  Evaluation scores stored with the loaded artifact.
// @Tags         model
// @Produce      json
// @Success      200  {object}  types.MetricsResponse
// @Failure      503  {object}  types.Envelope "No model loaded"
// @Router       /api/metrics [get]
func handleModelMetrics(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.ModelMetrics()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.MetricsResponse{
			Envelope: types.Envelope{Success: true},
			Metrics:  &m,
		})
	}
}

// handleReload godoc
// @Summary      Reload the model artifact
// @Description  Re-reads the configured artifact and swaps it in atomically. A failed reload keeps the previous model.
// @Tags         model
// @Produce      json
// @Success      200  {object}  types.ReloadResponse
// @Failure      500  {object}  types.Envelope "Reload failed"
// @Router       /api/model/reload [post]
func handleReload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res, err := svc.Reload(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ReloadResponse{
			Envelope:     types.Envelope{Success: true},
			ReloadResult: res,
		})
	}
}

// decodeFeatures enforces the JSON content type and body cap, then pulls the
// raw features list out of the request. It writes the error response itself
// and reports false when the request is unusable.
func decodeFeatures(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return nil, false
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var body featuresBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		// Oversized bodies surface here too; keep the reason generic.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	// An explicit null decodes to the literal "null", not a nil RawMessage.
	if body.Features == nil || string(body.Features) == "null" {
		writeJSONError(w, http.StatusBadRequest, "Invalid request")
		return nil, false
	}
	return body.Features, true
}
