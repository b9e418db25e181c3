package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/kadirpekel/coopcheck/a2a"
	"github.com/kadirpekel/coopcheck/logger"
	"github.com/kadirpekel/coopcheck/safety"
)

// ServeCmd starts the A2A server.
type ServeCmd struct {
	Host    string `help:"Bind address (overrides config)."`
	Port    int    `help:"Listen port (overrides config)."`
	Metrics bool   `help:"Expose Prometheus metrics on /metrics."`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	// CLI flags override config file settings
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Metrics {
		cfg.Metrics.Enabled = true
	}

	checker := safety.NewChecker(
		safety.WithSafeFoods(cfg.Safety.ExtraSafe),
		safety.WithUnsafeFoods(cfg.Safety.ExtraUnsafe),
	)

	log := logger.GetLogger()
	log.Info("food database loaded",
		"safe", checker.SafeCount(),
		"unsafe", checker.UnsafeCount())

	srv := a2a.NewServer(&a2a.ServerConfig{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		BaseURL: cfg.Server.BaseURL,
		Agent: a2a.AgentInfo{
			AgentID: cfg.Agent.ID,
			Name:    cfg.Agent.Name,
			Version: cfg.Agent.Version,
		},
		EnableMetrics: cfg.Metrics.Enabled,
	}, checker, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	}
}
