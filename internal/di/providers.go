package di

import (
	"fmt"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"TAMCP/internal/domain/repository"
	"TAMCP/internal/handler/api"
	mid "TAMCP/internal/middleware"
	internalrepo "TAMCP/internal/repository"
	"TAMCP/internal/service/ratelimit"
	"TAMCP/internal/services/indicators"
	"TAMCP/internal/usecase"
	pkgcache "TAMCP/pkg/cache"
	"TAMCP/pkg/config"
	xhttp "TAMCP/pkg/http"
	pkgkafka "TAMCP/pkg/kafka"
	applogger "TAMCP/pkg/logger"
	"TAMCP/pkg/metrics"
	"TAMCP/pkg/server"
)

// Version is reported in MCP serverInfo. Overridden at build time with -ldflags.
var Version = "0.1.0"

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the Prometheus registry shared by all collectors.
func ProvideRegistry() *prometheus.Registry {
	return metrics.NewRegistry()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	k := cfg.Kafka
	producer, err := pkgkafka.NewProducer(pkgkafka.ProducerConfig{
		Brokers:      k.Brokers,
		RequiredAcks: k.RequiredAcks,
		Compression:  k.Compression,
		MaxAttempts:  k.Producer.MaxAttempts,
		WriteTimeout: k.Producer.WriteTimeout,
		ReadTimeout:  k.Producer.ReadTimeout,
		BatchSize:    k.Producer.BatchSize,
		BatchBytes:   k.Producer.BatchBytes,
		BatchTimeout: k.Producer.Linger,
		Async:        k.Producer.Async,
		HashByKey:    true,
	}, reg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAuditPublisher publishes tool call events to Kafka, or drops them when Kafka is off.
func ProvideAuditPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.AuditPublisher {
	if producer == nil {
		return internalrepo.NewNoopAuditPublisher()
	}
	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Kafka.AuditTopic)
}

// ProvideCache creates the result cache selected by cache.backend. "none" yields nil.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	c := cfg.Cache
	redisCfg := pkgcache.RedisConfig{
		Addr:     net.JoinHostPort(c.Redis.Host, strconv.Itoa(c.Redis.Port)),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		PoolSize: c.Redis.PoolSize,
		Prefix:   c.Redis.Prefix,
	}

	switch c.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return pkgcache.NewMemoryCache(c.MemoryMaxSize), nil
	case "redis":
		rc, err := pkgcache.NewRedisCache(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	case "layered":
		rc, err := pkgcache.NewRedisCache(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return pkgcache.NewLayeredCache(rc, c.MemoryMaxSize, 0), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// ProvideCalculator binds the indicator functions to go-talib.
func ProvideCalculator() *indicators.Calculator {
	return indicators.NewCalculator(indicators.NewTalibBackend())
}

// ProvideToolRegistry creates the tool registry use case.
func ProvideToolRegistry(
	cfg *config.Config,
	calc *indicators.Calculator,
	cache pkgcache.Service,
	m repository.Metrics,
	audit repository.AuditPublisher,
	l *applogger.Logger,
) *usecase.ToolRegistry {
	return usecase.NewToolRegistry(calc,
		usecase.WithCache(cache, cfg.Cache.TTL),
		usecase.WithMetrics(m),
		usecase.WithAudit(audit),
		usecase.WithLogger(l),
	)
}

// ProvideRateLimiter creates the per-client limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideToolsHandler creates the REST and MCP handlers.
func ProvideToolsHandler(l *applogger.Logger, registry *usecase.ToolRegistry) *api.ToolsEchoHandler {
	return api.NewToolsEchoHandler(l, registry, Version)
}

// ProvideHTTPServer builds the echo server with auth, metrics and rate limiting.
func ProvideHTTPServer(
	cfg *config.Config,
	h *api.ToolsEchoHandler,
	reg *prometheus.Registry,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	l *applogger.Logger,
) (*xhttp.Server, error) {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithBodyLimit(cfg.Server.BodyLimit),
		xhttp.WithAuthToken(cfg.Auth.APIKey),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
		xhttp.WithLogger(l),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(reg, cfg.Metrics.Path, cfg.Server.SlowThreshold))
	}
	if cfg.Server.CORS.Enabled {
		opts = append(opts, xhttp.WithCORS(cfg.Server.CORS.AllowOrigins))
	}
	if limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(mid.RateLimit(limiter, m)))
	}

	srv, err := xhttp.NewServer(h, opts...)
	if err != nil {
		return nil, fmt.Errorf("http server: %w", err)
	}
	return srv, nil
}

// ProvideApp creates the application and registers resources for shutdown.
// The audit publisher owns the Kafka producer, so it is closed last.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	l *applogger.Logger,
	cache pkgcache.Service,
	audit repository.AuditPublisher,
	producer *pkgkafka.Producer,
) *server.App {
	app := server.New(cfg, srv, l)
	app.AddCloser("cache", cache)

	if cfg.Log.Collect.Enabled && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collect.Interval,
			CountThreshold: cfg.Log.Collect.CountThreshold,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
		app.AddCloser("log collector", server.CloserFunc(func() error {
			l.RemoveCollector()
			return nil
		}))
	}

	app.AddCloser("audit publisher", audit)
	return app
}
