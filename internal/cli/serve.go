package cli

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/shootdeck/shootdeck/internal/config"
	"github.com/shootdeck/shootdeck/internal/review"
	"github.com/shootdeck/shootdeck/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides SHOOTDECK_ADDR."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg := config.Load()
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	flow := review.New(ctx.Store)
	srv := server.New(cfg.Addr, cfg.AllowedOrigin, flow, &log)
	return srv.ListenAndServe()
}
