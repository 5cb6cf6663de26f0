package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"enercast/internal/httpapi"
	"enercast/internal/model"
	"enercast/internal/predictor"
	"enercast/pkg/mlapi"
)

// newServer assembles the real stack: predictor service behind the HTTP mux,
// served from an ephemeral listener that is torn down with the test.
func newServer(t *testing.T, cfg predictor.Config) *httptest.Server {
	t.Helper()
	svc := predictor.New(cfg)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

// newClient points a real client at the test server.
func newClient(srv *httptest.Server) *mlapi.Client {
	return mlapi.New(mlapi.Config{
		BaseURL:    srv.URL,
		Enabled:    true,
		HTTPClient: srv.Client(),
	})
}

// writeParams stores a loadable model artifact at path. The weights come from
// the builtin artifact so predictions stay in a sane range.
func writeParams(t *testing.T, path, version string) {
	t.Helper()
	p := model.Default()
	p.Version = version
	p.TrainedAt = "2026-02-01T00:00:00Z"
	buf, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("write params: %v", err)
	}
}

// httpGet fetches url with the server's client and returns status and body.
func httpGet(t *testing.T, hc *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := hc.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}
