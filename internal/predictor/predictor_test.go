package predictor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"enercast/internal/model"
	"enercast/pkg/types"
)

func builtinService(t *testing.T) *Service {
	t.Helper()
	return New(Config{AllowBuiltin: true})
}

func writeParams(t *testing.T, path string, p model.Params) {
	t.Helper()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write params: %v", err)
	}
}

func TestNewWithBuiltin(t *testing.T) {
	s := builtinService(t)
	h := s.Health()
	if h.Status != "healthy" || !h.ModelLoaded {
		t.Fatalf("health=%+v", h)
	}
	info, err := s.Info()
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.ModelType != "random_forest" || info.NFeatures != 16 {
		t.Fatalf("info=%+v", info)
	}
	if len(info.Features) != 16 || info.Features[0] != "consumption_lag_1h" {
		t.Fatalf("features=%v", info.Features)
	}
}

func TestNewDegradedWithoutParams(t *testing.T) {
	s := New(Config{})
	if h := s.Health(); h.Status != "healthy" || h.ModelLoaded {
		t.Fatalf("health=%+v", h)
	}
	if _, err := s.Info(); !IsNotLoaded(err) {
		t.Fatalf("info err=%v", err)
	}
	if _, err := s.Predict(context.Background(), json.RawMessage(`[{}]`)); !IsNotLoaded(err) {
		t.Fatalf("predict err=%v", err)
	}
	if _, err := s.ModelMetrics(); !IsNotLoaded(err) {
		t.Fatalf("metrics err=%v", err)
	}
}

func TestPredictBatch(t *testing.T) {
	s := builtinService(t)
	raw := json.RawMessage(`[
		{"timestamp":"2026-01-15T14:00:00Z","temperature":21.5,"humidity":58,"hour":14,"day_of_week":3,"month":1,"is_business_hour":1},
		{}
	]`)
	preds, err := s.Predict(context.Background(), raw)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("len=%d", len(preds))
	}
	if preds[0].Index != 0 || preds[1].Index != 1 {
		t.Fatalf("indices=%+v", preds)
	}
	if preds[0].Timestamp != "2026-01-15T14:00:00Z" {
		t.Fatalf("timestamp=%q", preds[0].Timestamp)
	}
	if preds[1].Timestamp != "" {
		t.Fatalf("empty input grew a timestamp: %q", preds[1].Timestamp)
	}
	for i, p := range preds {
		if p.Predicted <= 0 || p.Predicted > 500 {
			t.Fatalf("point %d: implausible prediction %v", i, p.Predicted)
		}
	}
}

func TestPredictEmptyBatch(t *testing.T) {
	s := builtinService(t)
	preds, err := s.Predict(context.Background(), json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if preds == nil || len(preds) != 0 {
		t.Fatalf("preds=%#v", preds)
	}
}

func TestPredictInvalidPayload(t *testing.T) {
	s := builtinService(t)
	if _, err := s.Predict(context.Background(), nil); !IsInvalidRequest(err) {
		t.Fatalf("nil payload err=%v", err)
	}
	if _, err := s.Predict(context.Background(), json.RawMessage(`{"not":"a list"}`)); !IsInvalidRequest(err) {
		t.Fatalf("non-list payload err=%v", err)
	}
}

func TestValidateWorksDegraded(t *testing.T) {
	s := New(Config{})
	report, err := s.Validate(json.RawMessage(`[{"temperature":20,"humidity":50,"renewable":10,"hour":30,"day_of_week":2,"month":5,"is_weekend":0,"is_business_hour":1}]`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if report.Valid || report.Checked != 1 {
		t.Fatalf("report=%+v", report)
	}
	if len(report.Issues) == 0 || report.Issues[0].Field != "hour" {
		t.Fatalf("issues=%+v", report.Issues)
	}
}

func TestValidateMissingBody(t *testing.T) {
	s := builtinService(t)
	if _, err := s.Validate(nil); !IsInvalidRequest(err) {
		t.Fatalf("err=%v", err)
	}
}

func TestModelMetricsFromArtifact(t *testing.T) {
	s := builtinService(t)
	m, err := s.ModelMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.MAE != 3.21 || m.Samples != 8760 {
		t.Fatalf("metrics=%+v", m)
	}
}

func TestReloadRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	s := New(Config{ParamsPath: path})
	if s.Health().ModelLoaded {
		t.Fatal("loaded a model from a missing file")
	}

	p := model.Default()
	p.Version = "2.0.0"
	writeParams(t, path, p)

	res, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !res.ModelLoaded || res.Version != "2.0.0" || res.Message != "model reloaded" {
		t.Fatalf("result=%+v", res)
	}
	if !s.Health().ModelLoaded {
		t.Fatal("health still degraded after reload")
	}
	if _, err := s.Predict(context.Background(), json.RawMessage(`[{}]`)); err != nil {
		t.Fatalf("predict after reload: %v", err)
	}
}

func TestReloadFailureKeepsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	writeParams(t, path, model.Default())

	s := New(Config{ParamsPath: path})
	if !s.Health().ModelLoaded {
		t.Fatal("initial load failed")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Reload(context.Background()); err == nil {
		t.Fatal("reload of a removed file succeeded")
	}
	if !s.Health().ModelLoaded {
		t.Fatal("failed reload dropped the working model")
	}
	if _, err := s.Predict(context.Background(), json.RawMessage(`[{}]`)); err != nil {
		t.Fatalf("predict after failed reload: %v", err)
	}
}
