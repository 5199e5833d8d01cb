// yaxiwm is the window manager daemon.
package main

import (
	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/logger"
	"github.com/proxin187/yaxiwm/internal/wm"
	"github.com/proxin187/yaxiwm/internal/x11"
)

var _ wm.Gateway = (*x11.Conn)(nil)

func main() {
	dir, err := config.Dir()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("resolving config directory")
	}
	cfg, err := config.Load(dir)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("loading configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	log := logger.WithComponent("main")

	conn, err := x11.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("opening display")
	}
	defer conn.Close()

	if err := conn.BecomeWM(); err != nil {
		log.Fatal().Err(err).Msg("claiming the root window")
	}

	manager := wm.New(conn, cfg)
	if err := manager.Setup(); err != nil {
		log.Fatal().Err(err).Msg("setting up")
	}

	log.Info().Msg("yaxiwm running")
	if err := manager.Run(config.SocketPath(dir), config.AutostartPath(dir)); err != nil {
		log.Fatal().Err(err).Msg("manager stopped")
	}
}
