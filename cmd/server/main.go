package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/config"
	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/network"
	"github.com/lixenwraith/warpzone/server"
	"github.com/lixenwraith/warpzone/service"
	"github.com/lixenwraith/warpzone/status"
)

const logDir = "logs"

var (
	addrFlag    = flag.String("addr", ":7777", "Listen address")
	configFlag  = flag.String("config", "", "Engine config file (YAML or JSON); empty uses defaults")
	worldsFlag  = flag.String("worlds", "worlds", "World template file or directory")
	debugFlag   = flag.Bool("debug", false, "Debug logging to console and "+logDir+"/"+logFileName)
	envFileFlag = flag.String("env", ".env", "Dotenv file")
)

func main() {
	flag.Parse()

	if err := config.LoadEnv(*envFileFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	settings := config.ServerSettings{
		Addr:       *addrFlag,
		ConfigPath: *configFlag,
		WorldsPath: *worldsFlag,
		Debug:      *debugFlag,
	}
	settings.Overlay(func(name string) bool { return set[name] })

	logger, logFile, err := newLogger(settings.Debug, logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	if err := run(settings, logger); err != nil {
		logger.Error("server failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(settings config.ServerSettings, logger *zap.Logger) error {
	cfg := config.Default()
	if settings.ConfigPath != "" {
		loaded, err := config.LoadEngine(settings.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	worlds, err := config.LoadWorlds(settings.WorldsPath, entity.Exists)
	if err != nil {
		return err
	}

	statusSvc := status.NewService()
	registry := statusSvc.Registry()

	eng, err := engine.New(cfg, worlds,
		engine.WithLogger(logger),
		engine.WithStatus(registry),
	)
	if err != nil {
		return err
	}

	srv := server.New(eng, logger)
	netSvc := network.NewService(srv, logger)
	srv.SetSender(netSvc)

	netCfg := network.DefaultConfig()
	netCfg.Address = settings.Addr

	hub := service.NewHub(logger)
	for _, svc := range []service.Service{statusSvc, netSvc, srv} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(netCfg, registry); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}

	logger.Info("warpzone listening",
		zap.Stringer("addr", netSvc.Transport().Addr()),
		zap.Int("worlds", len(worlds)),
		zap.Int("tick_rate", cfg.TickRate),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	logger.Info("shutting down", zap.String("signal", received.String()))

	hub.StopAll()
	return nil
}
