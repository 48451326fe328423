package telemetry

import (
	"context"
	"errors"

	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

// Telemetry bundles every observability pipeline of the process.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	Registry *prometheus.Registry
	Business *BusinessMetrics

	config    config.TelemetryConfig
	dbMetrics *DBMetrics
	logger    *zap.Logger
}

// Setup starts the pipelines enabled in cfg. The Prometheus registry and
// business metrics are always created.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{config: cfg, logger: logger, Registry: prometheus.NewRegistry()}

	t.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var err error
	if t.Business, err = NewBusinessMetrics(t.Registry); err != nil {
		return nil, err
	}

	if t.Tracer, err = NewTracerProvider(ctx, Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger); err != nil {
		return nil, err
	}

	if t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:           cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ExportInterval:    cfg.MetricsInterval,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	if t.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Enabled:           cfg.LogsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	if t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.PyroscopeEndpoint,
		ApplicationName: cfg.ServiceName,
	}, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	if cfg.SpanProfilesEnable && t.Profiler.IsEnabled() {
		if err := t.Tracer.EnableSpanProfiles(); err != nil {
			return nil, errors.Join(err, t.Shutdown(ctx))
		}
	}

	return t, nil
}

// LogCore returns the zap core exporting to the collector, or a no-op core.
func (t *Telemetry) LogCore(level zapcore.Level) zapcore.Core {
	return t.Logs.ZapCore(level)
}

// InstrumentDB registers span and metric callbacks on db.
// system is the db.system value, e.g. "postgresql".
func (t *Telemetry) InstrumentDB(ctx context.Context, db *gorm.DB, system string) error {
	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         t.config.DBTraceEnabled,
		LogFullSQL:      t.config.DBLogFullSQL,
		SlowQueryThresh: t.config.DBSlowQueryThresh,
		DBSystem:        system,
	}, t.logger)
	if err := plugin.Register(db); err != nil {
		return err
	}

	if !t.Meter.IsEnabled() {
		return nil
	}
	metrics, err := NewDBMetrics(t.Meter.Meter("db.client"), DBMetricsConfig{
		SlowQueryThreshold: t.config.DBSlowQueryThresh,
	}, t.logger)
	if err != nil {
		return err
	}
	if err := metrics.Register(db); err != nil {
		return err
	}
	metrics.StartPoolStatsCollection(ctx)
	t.dbMetrics = metrics
	return nil
}

// Shutdown stops every started pipeline, profiler last.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.dbMetrics != nil {
		t.dbMetrics.Stop()
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	return errors.Join(errs...)
}
