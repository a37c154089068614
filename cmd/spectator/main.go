package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/lixenwraith/warpzone/audio"
	"github.com/lixenwraith/warpzone/config"
	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/vmath"
)

const (
	logDir      = "logs"
	logFileName = "spectator.log"
	tickRate    = 30
)

var (
	worldFlag  = flag.String("world", "worlds", "World template file or directory")
	configFlag = flag.String("config", "", "Engine config file; empty uses defaults")
	botsFlag   = flag.Int("bots", 8, "Number of bot players")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "spectator needs an interactive terminal")
		os.Exit(1)
	}

	logger, logFile, err := setupLogging(*debugFlag, logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "spectator: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging returns a file logger in debug mode and a no-op logger otherwise
// The terminal belongs to tcell, so nothing is written to stdout or stderr
func setupLogging(debug bool, dir string) (*zap.Logger, io.Closer, error) {
	if !debug {
		return zap.NewNop(), nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(file),
		zap.DebugLevel,
	)
	return zap.New(core), file, nil
}

func run(logger *zap.Logger) error {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.LoadEngine(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.TickRate = tickRate

	worlds, err := config.LoadWorlds(*worldFlag, entity.Exists)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, worlds, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	swarm := newBotSwarm(*botsFlag, vmath.NewFastRand(uint64(time.Now().UnixNano())), logger)
	if err := swarm.join(eng); err != nil {
		return err
	}

	cues := audio.NewCuePlayer(audio.LoadConfig())
	if err := cues.Start(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer cues.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSPECTATOR CRASHED: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	cam := &camera{}
	if w, ok := eng.Atlas().World(cfg.Spawn.World); ok {
		for i, candidate := range eng.Atlas().Worlds() {
			if candidate == w {
				cam.world = i
			}
		}
		cam.area = cfg.Spawn.Area
	}
	view := &renderer{screen: screen}
	watch := newWatcher()
	muted := false

	ticker := time.NewTicker(eng.TickInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					close(quit)
					return nil
				case ev.Key() == tcell.KeyLeft:
					cam.step(eng.Atlas(), -1)
				case ev.Key() == tcell.KeyRight:
					cam.step(eng.Atlas(), 1)
				case ev.Key() == tcell.KeyUp:
					cam.jump(eng.Atlas(), -1)
				case ev.Key() == tcell.KeyDown:
					cam.jump(eng.Atlas(), 1)
				case ev.Rune() == 'm':
					muted = cues.ToggleMute()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			view.draw(eng, cam, muted)

		case now := <-ticker.C:
			swarm.drive(eng, float64(now.Sub(last).Milliseconds()))
			last = now
			eng.Tick()
			for _, c := range watch.observe(eng.Players()) {
				cues.Play(c)
			}
			view.draw(eng, cam, muted)
		}
	}
}
