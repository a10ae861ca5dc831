package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/internal/config"
	"github.com/goliatone/go-cotizador/internal/logger"
	"github.com/goliatone/go-cotizador/internal/tracing"
	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/editor"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// app is the wiring shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	client    *apiclient.Client
	tokens    *apiclient.PageToken
	driver    prompt.Driver
	dialogs   *prompt.Dialogs
	refresher *editor.PageRefresher
	editor    *editor.Editor
	metrics   *http.Server
	tracing   tracing.Shutdown
}

func newApp(c *cli.Context) (*app, error) {
	cfg, err := config.Load(config.Options{ConfigFile: c.String("config")})
	if err != nil {
		return nil, err
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("quote") {
		cfg.QuoteID = c.String("quote")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &app{cfg: cfg, logger: log}
	a.tracing, err = tracing.Setup(c.Context, tracing.Config{
		Endpoint:   cfg.Tracing.Endpoint,
		Insecure:   cfg.Tracing.Insecure,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Tracing.Endpoint != "" {
		log.Debug("tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint), zap.Float64("sample_rate", cfg.Tracing.SampleRate))
	}

	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithSession(cfg.SessionID),
		apiclient.WithLogger(log.Named("apiclient")),
		apiclient.WithMetrics(apiclient.NewMetrics(registry)),
	}
	if cfg.CSRFToken != "" {
		opts = append(opts, apiclient.WithTokenSource(apiclient.StaticToken(cfg.CSRFToken)))
	} else {
		a.tokens = &apiclient.PageToken{}
		opts = append(opts, apiclient.WithTokenSource(a.tokens))
	}
	a.client, err = apiclient.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	money, err := quote.NewMoneyFormatter(cfg.Locale, "")
	if err != nil {
		return nil, err
	}

	a.driver = prompt.NewSurveyDriver(c.App.Writer)
	a.dialogs = prompt.NewDialogs(a.driver)

	pagePath := "/cotizaciones/"
	if cfg.QuoteID != "" {
		pagePath = apiclient.QuotePath(cfg.QuoteID)
	}
	a.refresher = editor.NewPageRefresher(a.client, pagePath, a.tokens, log.Named("refresh"))
	a.editor = editor.New(cfg.QuoteID, a.client,
		editor.WithNotifier(a.dialogs),
		editor.WithConfirmer(a.dialogs),
		editor.WithRefresher(a.refresher),
		editor.WithLogger(log.Named("editor")),
		editor.WithMoneyFormatter(money),
	)

	if cfg.MetricsAddr != "" {
		a.metrics = serveMetrics(cfg.MetricsAddr, registry, log)
	}
	return a, nil
}

// load fetches the page once so the anti-forgery token and totals are known
// before the first mutation.
func (a *app) load(ctx context.Context) error {
	if err := a.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("load page: %w", err)
	}
	return nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.metrics != nil {
		if err := a.metrics.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	if a.tracing != nil {
		if err := a.tracing(ctx); err != nil {
			a.logger.Warn("tracing shutdown", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func serveMetrics(addr string, registry *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return srv
}

// withApp builds the app for one command and tears it down afterwards.
func withApp(fn func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := newApp(c)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(c, a)
	}
}

// report prints the outcome of an editor action and turns failures into an
// exit error.
func report(c *cli.Context, res editor.Result) error {
	fmt.Fprintf(c.App.Writer, "resultado: %s\n", res.Outcome)
	switch res.Outcome {
	case editor.Applied, editor.Declined:
		return nil
	default:
		if res.Err != nil {
			return cli.Exit(res.Err.Error(), 1)
		}
		return cli.Exit(res.Message, 1)
	}
}
