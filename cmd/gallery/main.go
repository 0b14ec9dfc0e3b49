package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gallery/internal/catalog"
	"gallery/internal/commands"
	"gallery/internal/config"
	"gallery/internal/env"
	"gallery/internal/googlefonts"
	"gallery/internal/input"
	"gallery/internal/logger"
	"gallery/internal/session"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	var configPath string
	r := commands.NewRegistry("run")
	flagSet := func(name string) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.StringVar(&configPath, "config", config.Path, "config file (YAML)")
		return fs
	}

	runFS := flagSet("run")
	r.Register("run", "open the gallery window", runFS, func() error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return runWindow(a)
	})

	layoutFS := flagSet("layout")
	r.Register("layout", "print the generated hall as YAML", layoutFS, func() error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return printLayout(os.Stdout, a)
	})

	var sim simulation
	simFS := flagSet("simulate")
	simFS.IntVar(&sim.ticks, "ticks", 600, "frames to simulate")
	simFS.BoolVar(&sim.backward, "backward", false, "walk backward instead of forward")
	simFS.Float64Var(&sim.turn, "turn", 0, "pointer motion per frame, pixels")
	simFS.BoolVar(&sim.pick, "pick", false, "click at the end and report what is in front")
	r.Register("simulate", "walk the hall headless and log where the viewer ends up", simFS, func() error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return sim.run(a)
	})

	var out string
	configFS := flagSet("config")
	configFS.StringVar(&out, "o", "", "write the effective config to this file instead of stdout")
	r.Register("config", "print the effective config (file, .env and environment merged) as YAML", configFS, func() error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return writeConfig(os.Stdout, a, out)
	})

	var family string
	fontsFS := flagSet("fonts")
	fontsFS.StringVar(&family, "family", "Noto Sans JP", "Google Fonts family to fetch")
	r.Register("fonts", "download a font family into assets/fonts", fontsFS, func() error {
		a, err := setup(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return fetchFont(context.Background(), a, googlefonts.New(), family)
	})

	if err := r.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			r.Usage(os.Stderr)
			return
		}
		if errors.Is(err, commands.ErrUnknown) {
			r.Usage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, "gallery:", err)
		os.Exit(1)
	}
}

// app is what every subcommand starts from: validated config, logger and catalog.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	recorder *logger.Recorder
	logFile  io.Closer
	catalog  catalog.Catalog
}

// dotEnv holds local GALLERY_* overrides; variables already in the environment win.
const dotEnv = ".env"

func setup(configPath string) (*app, error) {
	fromDotEnv, err := env.Load(dotEnv, config.EnvPrefix)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, rec, logFile, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	cat := catalog.Sample()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			_ = log.Sync()
			_ = logFile.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	log.Info("gallery starting",
		zap.String("config", configPath),
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("exhibits", cat.Len()),
		zap.String("input", cfg.InputMode),
		zap.Int("dotenv_vars", fromDotEnv),
	)
	return &app{cfg: cfg, log: log, recorder: rec, logFile: logFile, catalog: cat}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// writeConfig prints the effective config to w, or saves it to path when one is given.
func writeConfig(w io.Writer, a *app, path string) error {
	if path != "" {
		if err := config.Save(path, a.cfg); err != nil {
			return err
		}
		a.log.Info("config written", zap.String("path", path))
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a.cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (a *app) sessionOptions() session.Options {
	return session.Options{
		Hall:      a.cfg.Hall.Params(),
		Movement:  a.cfg.Movement,
		EyeHeight: a.cfg.Camera.EyeHeight,
		FovY:      a.cfg.Camera.FovY,
		FocusFovY: a.cfg.Camera.FocusFovY,
		Near:      a.cfg.Camera.Near,
		Far:       a.cfg.Camera.Far,
		TargetFPS: a.cfg.Window.TargetFPS,
	}
}

// newSession opens the configured input adapter and builds a session around it.
func (a *app) newSession(panel session.ContentPanel) (*session.Session, input.Adapter, error) {
	mode, err := input.ParseMode(a.cfg.InputMode)
	if err != nil {
		return nil, nil, err
	}
	adapter, err := input.Open(mode)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(a.catalog, a.sessionOptions(), adapter, panel, a.log)
	if err != nil {
		return nil, nil, err
	}
	return s, adapter, nil
}
