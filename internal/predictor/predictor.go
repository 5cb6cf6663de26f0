// Package predictor implements the stand-in prediction service: the same
// contract the remote backend serves, backed by the local linear estimator.
// It exists so the client, the CLI and dashboards keep working when no
// remote service is configured.
package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"enercast/internal/model"
	"enercast/pkg/types"
)

// Config configures the stand-in service.
type Config struct {
	// ParamsPath is the model artifact to serve. When empty the builtin
	// artifact is used if AllowBuiltin is set, otherwise the service
	// starts degraded.
	ParamsPath string
	// AllowBuiltin permits serving the builtin parameters when no
	// ParamsPath is configured.
	AllowBuiltin bool
	// Logger for lifecycle events. The zero value logs nothing.
	Logger zerolog.Logger
}

// Service holds the loaded estimator behind a lock so a reload swaps it
// atomically while predictions are in flight.
type Service struct {
	mu  sync.RWMutex
	cfg Config
	est *model.Estimator
	log zerolog.Logger
}

// New builds the service and attempts the initial load. A failed load
// leaves the service running degraded: health still answers, predictions
// return a not-loaded error until a reload succeeds.
func New(cfg Config) *Service {
	s := &Service{cfg: cfg, log: cfg.Logger}
	est, reason := load(cfg)
	s.est = est
	if est != nil {
		s.log.Info().Str("version", est.Params().Version).Str("path", cfg.ParamsPath).Msg("model loaded")
	} else {
		s.log.Warn().Str("reason", reason).Msg("starting without a model")
	}
	setModelLoaded(est != nil)
	return s
}

func load(cfg Config) (*model.Estimator, string) {
	if cfg.ParamsPath == "" {
		if cfg.AllowBuiltin {
			return model.NewEstimator(model.Default()), ""
		}
		return nil, "no model parameters configured"
	}
	p, err := model.Load(cfg.ParamsPath)
	if err != nil {
		return nil, err.Error()
	}
	return model.NewEstimator(p), ""
}

func (s *Service) estimator() *model.Estimator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.est
}

// Health reports liveness. It never fails; a degraded service is still
// healthy, it just has no model.
func (s *Service) Health() types.HealthStatus {
	return types.HealthStatus{
		Status:      "healthy",
		ModelLoaded: s.estimator() != nil,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Info describes the loaded model.
func (s *Service) Info() (types.ModelInfo, error) {
	est := s.estimator()
	if est == nil {
		return types.ModelInfo{}, ErrNotLoaded()
	}
	p := est.Params()
	return types.ModelInfo{
		ModelType: p.ModelType,
		Version:   p.Version,
		TrainedAt: p.TrainedAt,
		Features:  model.FeatureNames(),
		NFeatures: model.NumFeatures,
	}, nil
}

// Predict decodes the raw feature batch, applies the service's field
// defaults, and scores every element in request order.
func (s *Service) Predict(ctx context.Context, raw json.RawMessage) ([]types.PredictionPoint, error) {
	est := s.estimator()
	if est == nil {
		return nil, ErrNotLoaded()
	}
	if len(raw) == 0 {
		return nil, ErrInvalidRequest("")
	}
	features, err := model.DecodeBatch(raw)
	if err != nil {
		return nil, ErrInvalidRequest(err.Error())
	}
	out := make([]types.PredictionPoint, 0, len(features))
	for i, f := range features {
		out = append(out, types.PredictionPoint{
			Index:     i,
			Predicted: est.Predict(model.Transform(f)),
			Timestamp: f.Timestamp,
		})
	}
	predictionsTotal.Add(float64(len(out)))
	return out, nil
}

// Validate range-checks the batch exactly as given. Absent fields are not
// defaulted here; reporting them is the point of validation. It works even
// while degraded, no model is needed.
func (s *Service) Validate(raw json.RawMessage) (types.ValidationReport, error) {
	if len(raw) == 0 {
		return types.ValidationReport{}, ErrInvalidRequest("")
	}
	var features []types.FeatureInput
	if err := json.Unmarshal(raw, &features); err != nil {
		return types.ValidationReport{}, ErrInvalidRequest(err.Error())
	}
	return model.Validate(features), nil
}

// ModelMetrics returns the evaluation scores stored in the artifact.
func (s *Service) ModelMetrics() (types.ModelMetrics, error) {
	est := s.estimator()
	if est == nil {
		return types.ModelMetrics{}, ErrNotLoaded()
	}
	p := est.Params()
	m := p.Metrics
	if m.EvaluatedAt == "" {
		m.EvaluatedAt = p.TrainedAt
	}
	return m, nil
}

// Reload re-reads the configured artifact and swaps it in atomically. A
// failed reload keeps whatever was loaded before and reports the reason.
func (s *Service) Reload(ctx context.Context) (types.ReloadResult, error) {
	est, reason := load(s.cfg)
	if est == nil {
		s.log.Warn().Str("reason", reason).Msg("model reload failed")
		return types.ReloadResult{}, errors.New(reason)
	}
	s.mu.Lock()
	s.est = est
	s.mu.Unlock()
	setModelLoaded(true)

	v := est.Params().Version
	s.log.Info().Str("version", v).Msg("model reloaded")
	return types.ReloadResult{Message: "model reloaded", ModelLoaded: true, Version: v}, nil
}
