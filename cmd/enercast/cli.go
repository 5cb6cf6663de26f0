package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"enercast/internal/config"
	"enercast/internal/httpapi"
	"enercast/internal/logging"
	"enercast/internal/predictor"
	"enercast/pkg/mlapi"
	"enercast/pkg/sample"
	"enercast/pkg/types"
)

// version is stamped via -ldflags at release time.
var version = "dev"

// app carries the configuration and logger resolved by the root command's
// PersistentPreRun, shared by every subcommand.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// client builds the prediction service client from the resolved config.
func (a *app) client() *mlapi.Client {
	s := a.cfg.Service
	return mlapi.New(mlapi.Config{
		BaseURL:        s.BaseURL,
		Enabled:        s.Enabled,
		APIKey:         s.APIKey,
		HealthTimeout:  time.Duration(s.HealthTimeoutSec) * time.Second,
		PredictTimeout: time.Duration(s.PredictTimeoutSec) * time.Second,
		RequestTimeout: time.Duration(s.RequestTimeoutSec) * time.Second,
		RateLimit:      rate.Limit(s.RateLimit),
		RateBurst:      s.RateBurst,
		Logger:         a.log,
	})
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd() *cobra.Command {
	a := &app{}

	var (
		flagConfig    string
		flagBaseURL   string
		flagAPIKey    string
		flagDisabled  bool
		flagTimeout   int
		flagLogLevel  string
		flagLogFormat string
		flagLogFile   string
	)

	root := &cobra.Command{
		Use:           "enercast",
		Short:         "Client and stand-in server for the energy consumption prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (.yaml/.yml, .json or .toml)")
	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Prediction service base URL (overrides config)")
	root.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Bearer token for the prediction service")
	root.PersistentFlags().BoolVar(&flagDisabled, "disabled", false, "Disable the prediction service integration")
	root.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Per-call timeout override in seconds (all endpoints)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: console|json")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a daily-rotated file")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		// Flags beat config and environment.
		if flagBaseURL != "" {
			cfg.Service.BaseURL = flagBaseURL
		}
		if flagAPIKey != "" {
			cfg.Service.APIKey = flagAPIKey
		}
		if flagDisabled {
			cfg.Service.Enabled = false
		}
		if flagTimeout > 0 {
			cfg.Service.HealthTimeoutSec = flagTimeout
			cfg.Service.PredictTimeoutSec = flagTimeout
			cfg.Service.RequestTimeoutSec = flagTimeout
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if flagLogFormat != "" {
			cfg.Log.Format = flagLogFormat
		}
		if flagLogFile != "" {
			cfg.Log.File = flagLogFile
		}
		log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log = log
		return nil
	}

	healthCmd := &cobra.Command{Use: "health", Short: "Check the prediction service health", Example: "  enercast health", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := a.client().Health(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(st)
	}}
	root.AddCommand(healthCmd)

	// model group
	modelCmd := &cobra.Command{Use: "model", Short: "Model operations", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("model requires a subcommand: info|reload")
	}}
	modelInfo := &cobra.Command{Use: "info", Short: "Describe the loaded model", Example: "  enercast model info", RunE: func(cmd *cobra.Command, args []string) error {
		info, err := a.client().ModelInfo(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(info)
	}}
	modelReload := &cobra.Command{Use: "reload", Short: "Ask the service to reload its model artifact", Example: "  enercast model reload", RunE: func(cmd *cobra.Command, args []string) error {
		res, err := a.client().Reload(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(res)
	}}
	modelCmd.AddCommand(modelInfo, modelReload)
	root.AddCommand(modelCmd)

	metricsCmd := &cobra.Command{Use: "metrics", Short: "Show the model evaluation metrics", Example: "  enercast metrics", RunE: func(cmd *cobra.Command, args []string) error {
		m, err := a.client().ModelMetrics(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(m)
	}}
	root.AddCommand(metricsCmd)

	// predict
	var predictFile string
	var predictSample int
	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a feature batch against the prediction service",
		Example: "  enercast predict --file batch.json\n" +
			"  cat batch.json | enercast predict\n" +
			"  enercast predict --sample 24",
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := featuresFromFlags(predictFile, predictSample)
			if err != nil {
				return err
			}
			preds, err := a.client().Predict(cmd.Context(), features)
			if err != nil {
				return err
			}
			return printJSON(preds)
		},
	}
	predictCmd.Flags().StringVar(&predictFile, "file", "", "Feature batch file ('-' or empty reads stdin)")
	predictCmd.Flags().IntVar(&predictSample, "sample", 0, "Generate N hours of synthetic features instead of reading input")
	root.AddCommand(predictCmd)

	// validate
	var validateFile string
	var validateSample int
	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Range-check a feature batch without scoring it",
		Example: "  enercast validate --file batch.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := featuresFromFlags(validateFile, validateSample)
			if err != nil {
				return err
			}
			report, err := a.client().Validate(cmd.Context(), features)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Feature batch file ('-' or empty reads stdin)")
	validateCmd.Flags().IntVar(&validateSample, "sample", 0, "Generate N hours of synthetic features instead of reading input")
	root.AddCommand(validateCmd)

	// sample generator
	var (
		sampleHours     int
		sampleStart     string
		sampleSeed      int64
		sampleBaseTemp  float64
		sampleBaseHum   float64
		samplePeakRenew float64
	)
	sampleCmd := &cobra.Command{
		Use:     "sample",
		Short:   "Generate synthetic hourly features for offline use",
		Example: "  enercast sample --hours 48 --start 2026-01-15T00:00:00Z > batch.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sample.Options{
				Hours:           sampleHours,
				Seed:            sampleSeed,
				BaseTemperature: sampleBaseTemp,
				BaseHumidity:    sampleBaseHum,
				PeakRenewable:   samplePeakRenew,
			}
			if sampleStart != "" {
				start, err := time.Parse(time.RFC3339, sampleStart)
				if err != nil {
					return fmt.Errorf("parse start: %w", err)
				}
				opts.Start = start
			}
			return printJSON(sample.Features(opts))
		},
	}
	sampleCmd.Flags().IntVar(&sampleHours, "hours", 0, "Number of hourly points (default 24)")
	sampleCmd.Flags().StringVar(&sampleStart, "start", "", "RFC 3339 start time (default now, truncated to the hour)")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Noise seed; same seed and start reproduce the series")
	sampleCmd.Flags().Float64Var(&sampleBaseTemp, "base-temp", 0, "Base temperature in °C (default 18.0)")
	sampleCmd.Flags().Float64Var(&sampleBaseHum, "base-humidity", 0, "Base humidity in percent (default 65.0)")
	sampleCmd.Flags().Float64Var(&samplePeakRenew, "peak-renewable", 0, "Midday renewable share peak in percent (default 45.0)")
	root.AddCommand(sampleCmd)

	// serve: the stand-in prediction server
	var (
		serveAddr        string
		serveParams      string
		serveNoBuiltin   bool
		serveCORSOrigins string
		serveRate        string
	)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stand-in prediction server",
		Example: "  enercast serve --addr :8090\n" +
			"  enercast serve --params ./model_params.json --rate 100-S",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if serveAddr != "" {
				cfg.Server.Addr = serveAddr
			}
			if serveParams != "" {
				cfg.Server.ParamsPath = serveParams
			}
			if serveNoBuiltin {
				cfg.Server.AllowBuiltin = false
			}
			if serveRate != "" {
				cfg.Server.RateLimit = serveRate
			}
			if origins := splitCSV(serveCORSOrigins); len(origins) > 0 {
				cfg.Server.CORSEnabled = true
				cfg.Server.CORSOrigins = origins
			}
			return runServer(cfg, a.log)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address, e.g. :8090")
	serveCmd.Flags().StringVar(&serveParams, "params", "", "Model parameters file to serve")
	serveCmd.Flags().BoolVar(&serveNoBuiltin, "no-builtin", false, "Start degraded instead of serving the builtin parameters")
	serveCmd.Flags().StringVar(&serveCORSOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	serveCmd.Flags().StringVar(&serveRate, "rate", "", "Per-client rate limit, e.g. 100-S or 5000-H")
	root.AddCommand(serveCmd)

	versionCmd := &cobra.Command{Use: "version", Short: "Print the version", Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("enercast", version)
	}}
	root.AddCommand(versionCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}

// runServer wires the stand-in service into the HTTP layer and serves it
// until SIGINT/SIGTERM, then drains with a 5s grace period.
func runServer(cfg *config.Config, log zerolog.Logger) error {
	svc := predictor.New(predictor.Config{
		ParamsPath:   cfg.Server.ParamsPath,
		AllowBuiltin: cfg.Server.AllowBuiltin,
		Logger:       log,
	})

	httpapi.SetLogger(log)
	httpapi.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
	if cfg.Server.CORSEnabled {
		httpapi.SetCORSOptions(true, cfg.Server.CORSOrigins,
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Content-Type", "Authorization"})
	}
	if err := httpapi.SetRateLimit(cfg.Server.RateLimit); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	// Base context cancels in-flight predictions on shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(svc)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("params", cfg.Server.ParamsPath).Msg("stand-in server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// featuresFromFlags resolves the feature batch for predict/validate: a
// generated synthetic series when --sample is set, otherwise a file or stdin.
func featuresFromFlags(file string, sampleHours int) ([]types.FeatureInput, error) {
	if sampleHours > 0 {
		return sample.Features(sample.Options{Hours: sampleHours}), nil
	}
	return readFeatures(file)
}

// readFeatures loads a feature batch from a file, or stdin when path is empty
// or "-". Both a bare JSON array and a {"features": [...]} document work.
func readFeatures(path string) ([]types.FeatureInput, error) {
	var b []byte
	var err error
	if path == "" || path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("empty feature input")
	}
	if b[0] == '{' {
		var doc struct {
			Features []types.FeatureInput `json:"features"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse features: %w", err)
		}
		if doc.Features == nil {
			return nil, fmt.Errorf("document has no features list")
		}
		return doc.Features, nil
	}
	var features []types.FeatureInput
	if err := json.Unmarshal(b, &features); err != nil {
		return nil, fmt.Errorf("parse features: %w", err)
	}
	return features, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitCSV splits a comma-separated flag value, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
