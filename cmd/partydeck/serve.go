package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/partydeck/partydeck/internal/registry"
	"github.com/partydeck/partydeck/internal/server"
)

// ServeCmd runs the WebSocket game server
type ServeCmd struct {
	Config string `kong:"default='partydeck.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	switch {
	case c.Debug:
		logger.SetLevel(log.DebugLevel)
	default:
		if lvl, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	} else if cfg.Server.Seed != 0 {
		seed = cfg.Server.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	srv := server.NewServer(addr, logger)
	reg := registry.New(logger, quartz.NewReal(), rng, srv, cfg.RegistryConfig())
	srv.SetArena(reg)

	logger.Info("Starting partydeck server", "addr", addr, "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")
		return srv.Stop()
	})

	return g.Wait()
}
