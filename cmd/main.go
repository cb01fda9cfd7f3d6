package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/riskfuse/riskfuse/internal/adapters/http/api"
	app "github.com/riskfuse/riskfuse/internal/app"
	"github.com/riskfuse/riskfuse/internal/config"
	"github.com/riskfuse/riskfuse/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the service registers its own
	// metrics on a custom registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options.
	svc := app.New(
		app.WithLogger(log),
		app.WithModelPath(cfg.ModelPath),
		app.WithRetentionLimit(cfg.RetentionLimit),
		app.WithErrorRateThreshold(cfg.ErrorRateThreshold),
		app.WithRemoteLatencyRange(
			time.Duration(cfg.RemoteLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.RemoteLatencyMaxMS)*time.Millisecond,
		),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Watch the config file, when one is in use, and apply the reloadable
	// settings at runtime.
	if path := os.Getenv("RISKFUSE_CONFIG"); path != "" {
		go func() {
			err := config.Watch(ctx, path, func(next *config.Config) {
				if err := logger.SetLevelString(next.LogLevel); err != nil {
					log.Warn(ctx, "reloaded log_level invalid; keeping current", logger.Error(err))
				}
				svc.SetErrorRateThreshold(next.ErrorRateThreshold)
			})
			if err != nil {
				log.Error(ctx, "config watch failed", logger.Error(err))
			}
		}()
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	// Bind the preferred port, scanning forward when it is busy.
	ln, addr, err := listenWithFallback(ctx, log, cfg.Addr, cfg.PortScanAttempts)
	if err != nil {
		log.Error(ctx, "no free port found", logger.String("addr", cfg.Addr), logger.Error(err))
		return
	}

	srv := &http.Server{
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", addr))
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// listenWithFallback binds addr, trying up to attempts successive ports
// when the preferred one is taken. Returns the listener and the address it
// actually bound.
func listenWithFallback(ctx context.Context, log logger.Logger, addr string, attempts int) (net.Listener, string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, "", err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, "", err
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port+i))
		ln, err := net.Listen("tcp", candidate)
		if err != nil {
			lastErr = err
			log.Warn(ctx, "port not available, trying next",
				logger.String("addr", candidate), logger.Error(err))
			continue
		}
		return ln, candidate, nil
	}
	return nil, "", lastErr
}
