package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tournevent/iats/internal/config"
	"github.com/tournevent/iats/internal/telemetry"
	"github.com/tournevent/iats/pkg/iats"
	"github.com/tournevent/iats/pkg/iats/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

const reportDateLayout = "2006-01-02"

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagRegion != "" {
		cfg.Region = flagRegion
	}
	if flagMock {
		cfg.UseMock = true
	}
	return cfg, nil
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer, recorder iats.Recorder) *iats.Client {
	clientCfg := iats.Config{
		AgentCode: cfg.AgentCode,
		Password:  cfg.Password,
		Region:    iats.ParseRegion(cfg.Region),
		Timeout:   cfg.Timeout,
	}

	if cfg.UseMock {
		return iats.NewWithTransport(clientCfg, mock.New(), logger, tracer, iats.WithRecorder(recorder))
	}
	return iats.New(clientCfg, logger, tracer, iats.WithRecorder(recorder))
}

// newCLIClient builds a client for one-shot commands. Logs go to stderr at
// warn level unless LOG_LEVEL asks for more.
func newCLIClient(ctx context.Context) (*iats.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogLevel == "info" || cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	logger, err := telemetry.NewCLILogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	tracer, shutdown, err := initTracer(ctx, cfg)
	if err != nil {
		tracer, shutdown = nil, func(context.Context) error { return nil }
	}

	cleanup := func() {
		shutdown(context.Background())
		logger.Sync()
	}
	return initClient(cfg, logger, tracer, nil), cleanup, nil
}

// loadParams merges the YAML params file with name=value flags; flags win.
func loadParams(file string, flags []string) (iats.Parameters, error) {
	values := map[string]any{}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading params file: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parsing params file: %w", err)
		}
	}

	for _, f := range flags {
		name, value, err := splitParam(f)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}

	return iats.ParametersFromMap(values), nil
}

func reportDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	date, err := time.ParseInLocation(reportDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected %s", s, reportDateLayout)
	}
	return date, nil
}
