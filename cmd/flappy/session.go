package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/scripting"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// pilotFlags are shared by every command that drives a game.
type pilotFlags struct {
	pilot  string
	script string
	record bool
}

func (f *pilotFlags) register(cmd *cobra.Command, defaultPilot string) {
	cmd.Flags().StringVar(&f.pilot, "pilot", defaultPilot, "Pilot: human, bot or lua (see 'flappy pilots')")
	cmd.Flags().StringVar(&f.script, "script", "", "Lua script for --pilot lua")
	cmd.Flags().BoolVar(&f.record, "record", false, "Save the run to the journal on exit")
}

// validate rejects unknown pilots and a --script no pilot will read.
func (f pilotFlags) validate() error {
	if f.pilot != "" && !registry.Exists(f.pilot) {
		ids := make([]string, 0)
		for _, p := range registry.List() {
			ids = append(ids, p.ID)
		}
		return fmt.Errorf("unknown pilot %q (available: %s)", f.pilot, strings.Join(ids, ", "))
	}
	if f.script != "" && f.pilot != scripting.PilotID {
		return fmt.Errorf("--script needs --pilot %s", scripting.PilotID)
	}
	return nil
}

// session bundles everything one game needs from the command line.
type session struct {
	cfg     config.FlappyConfig
	seed    int64
	logger  *log.Logger
	logFile *os.File
	game    *flappy.Game
	driver  *sim.Driver
	pilot   registry.Pilot
	rec     *sim.Recording
}

// newLogger creates the command logger. Without --log-file, logs go to
// fallback, which is io.Discard for the terminal frontend.
func newLogger(fallback io.Writer) (*log.Logger, *os.File, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	var file *os.File
	if flagLogFile != "" {
		file, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = file
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, file, nil
}

// loadConfig resolves the config file and applies --fps.
func loadConfig(logger *log.Logger) (config.FlappyConfig, error) {
	cfg, source, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	logger.Debug("config loaded", "source", source, "tick_rate", cfg.Runtime.TickRate)
	return cfg, nil
}

func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newSession loads config, builds the game, the pilot and the driver.
func newSession(pf pilotFlags, logOut io.Writer, extra ...sim.DriverOption) (*session, error) {
	if err := pf.validate(); err != nil {
		return nil, err
	}

	logger, logFile, err := newLogger(logOut)
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, logFile: logFile}

	if s.cfg, err = loadConfig(logger); err != nil {
		s.close()
		return nil, err
	}

	s.seed = resolveSeed()
	if s.game, err = flappy.New(s.cfg, flappy.WithSeed(s.seed)); err != nil {
		s.close()
		return nil, err
	}

	opts := append([]sim.DriverOption{sim.WithLogger(logger)}, extra...)

	if pf.pilot != "" {
		s.pilot, err = registry.Create(pf.pilot, registry.Options{
			Config: s.cfg,
			Script: pf.script,
			Logger: logger,
		})
		if err != nil {
			s.close()
			return nil, err
		}
		opts = append(opts, sim.WithPilot(s.pilot))
	}

	if pf.record {
		s.rec = sim.NewRecording(s.seed, s.cfg, pf.pilot)
		opts = append(opts, sim.WithRecording(s.rec))
	}

	s.driver = sim.NewDriver(s.game, s.cfg.Runtime.TickRate, opts...)
	logger.Info("session started", "seed", s.seed, "pilot", pf.pilot, "record", pf.record)
	return s, nil
}

// save writes the recording to the journal, if recording is on.
func (s *session) save() (int64, error) {
	if s.rec == nil || s.rec.Frames == 0 {
		return 0, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	id, err := store.SaveRun(s.game.ID(), s.rec)
	if err != nil {
		return 0, err
	}
	s.logger.Info("run recorded", "id", id, "frames", s.rec.Frames, "best", s.rec.Best)
	return id, nil
}

func (s *session) close() {
	if c, ok := s.pilot.(registry.Closer); ok {
		c.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// finish saves the recording, reports it and releases resources.
func (s *session) finish() {
	defer s.close()

	id, err := s.save()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		return
	}
	if id != 0 {
		fmt.Printf("Run saved as #%d (replay with 'flappy replay %d')\n", id, id)
	}
}

// fatal prints err and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
