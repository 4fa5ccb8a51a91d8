package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/younwookim/kinecore/internal/application/game"
	"github.com/younwookim/kinecore/internal/application/replay"
	"github.com/younwookim/kinecore/internal/application/scene/playing"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
	"github.com/younwookim/kinecore/internal/infrastructure/input"
)

//go:embed configs
var configFS embed.FS

// options are the runtime settings after flags are layered over the environment
type options struct {
	configDir  string
	character  string
	stage      string
	logLevel   string
	watch      bool
	tickRate   int
	scale      int
	screenW    int
	screenH    int
	headless   bool
	frames     int
	replayPath string
	recordPath string

	// set holds the flags given explicitly
	set map[string]bool
}

func parseFlags(args []string, rt *config.RuntimeConfig) (*options, error) {
	o := &options{set: make(map[string]bool)}

	fset := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fset.StringVar(&o.configDir, "config-dir", rt.ConfigDir, "directory holding the character and stages/")
	fset.StringVar(&o.character, "character", rt.Character, "character tuning name")
	fset.StringVar(&o.stage, "stage", rt.Stage, "stage name")
	fset.StringVar(&o.logLevel, "log-level", rt.LogLevel, "debug, info, warn or error")
	fset.BoolVar(&o.watch, "watch", rt.Watch, "hot reload the character file")
	fset.IntVar(&o.tickRate, "tps", rt.TickRate, "simulation ticks per second")
	fset.IntVar(&o.scale, "scale", rt.Scale, "window scale")
	fset.IntVar(&o.screenW, "width", rt.ScreenW, "logical screen width")
	fset.IntVar(&o.screenH, "height", rt.ScreenH, "logical screen height")
	fset.BoolVar(&o.headless, "headless", false, "run without a window and print the final state as JSON")
	fset.IntVar(&o.frames, "frames", 0, "frames to simulate when headless (default: the whole replay)")
	fset.StringVar(&o.replayPath, "replay", "", "play back a recorded input file")
	fset.StringVar(&o.recordPath, "record", "", "record input to file (e.g., -record replay.json)")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	fset.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.tickRate <= 0 {
		return nil, fmt.Errorf("-tps must be positive, got %d", o.tickRate)
	}
	return o, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// newLoader reads configs from dir when it exists, otherwise from the
// copies embedded in the binary. Only on-disk configs can be watched.
func newLoader(dir string) (*config.Loader, bool, error) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return config.NewLoader(dir), true, nil
	}
	sub, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, false, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(sub, "configs"), false, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	rt, err := config.LoadRuntime()
	if err != nil {
		return err
	}
	o, err := parseFlags(args, rt)
	if err != nil {
		return err
	}

	logger, err := newLogger(o.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var replayer *replay.Replayer
	if o.replayPath != "" {
		data, err := replay.LoadReplay(o.replayPath)
		if err != nil {
			return err
		}
		// A recording names the configs it was made with
		if !o.set["stage"] && data.Stage != "" {
			o.stage = data.Stage
		}
		if !o.set["character"] && data.Character != "" {
			o.character = data.Character
		}
		if data.TickRate > 0 && data.TickRate != o.tickRate {
			logger.Warn("replay recorded at a different tick rate",
				zap.Int("recorded", data.TickRate),
				zap.Int("current", o.tickRate),
			)
		}
		replayer = replay.NewReplayer(*data)
	}

	loader, onDisk, err := newLoader(o.configDir)
	if err != nil {
		return err
	}
	if !onDisk {
		logger.Info("using embedded configs", zap.String("configDir", o.configDir))
	}

	charCfg, err := loader.LoadCharacter(o.character)
	if err != nil {
		return fmt.Errorf("failed to load character: %w", err)
	}
	stageCfg, err := loader.LoadStage(o.stage)
	if err != nil {
		return fmt.Errorf("failed to load stage: %w", err)
	}

	if o.headless {
		return runHeadless(stdout, stageCfg, charCfg, replayer, o.frames, o.tickRate, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var reloads <-chan config.Reload
	if o.watch && onDisk {
		path, err := loader.CharacterPath(o.character)
		if err != nil {
			return err
		}
		if reloads, err = config.Watch(ctx, path, logger); err != nil {
			return err
		}
		logger.Info("watching character config", zap.String("path", path))
	}

	sc, err := playing.New(stageCfg, charCfg, input.NewKeyboard(input.DefaultBindings()), playing.Options{
		Logger:     logger,
		Character:  o.character,
		TickRate:   o.tickRate,
		RecordPath: o.recordPath,
		Replay:     replayer,
		Reloads:    reloads,
		ScreenW:    o.screenW,
		ScreenH:    o.screenH,
	})
	if err != nil {
		return err
	}

	g := game.New(sc, o.screenW, o.screenH, o.tickRate)

	ebiten.SetWindowSize(o.screenW*o.scale, o.screenH*o.scale)
	ebiten.SetWindowTitle("kinecore sandbox")
	ebiten.SetTPS(o.tickRate)

	return ebiten.RunGame(g)
}
