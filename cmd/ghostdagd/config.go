package main

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/infrastructure/logger"
)

const (
	appName               = "ghostdagd"
	defaultLogFilename    = "ghostdagd.log"
	defaultErrLogFilename = "ghostdagd_err.log"
	defaultMaxLogRolls    = 8
)

// config holds the daemon's CLI-configurable options, in the teacher's
// jessevdk/go-flags idiom (cmd/txgen/config.go, kasparovd/config/config.go).
type config struct {
	DataDir  string `long:"datadir" description:"Directory to store consensus data"`
	LogDir   string `long:"logdir" description:"Directory to log output to"`
	LogLevel string `long:"loglevel" description:"Logging level: trace, debug, info, warn, error, critical" default:"info"`
}

func defaultAppDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, "."+appName), nil
}

// parseConfig parses the CLI arguments, filling in defaults for anything
// left unset.
func parseConfig() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		dataDir, err := defaultAppDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = filepath.Join(dataDir, "data")
	}
	if cfg.LogDir == "" {
		dataDir, err := defaultAppDataDir()
		if err != nil {
			return nil, err
		}
		cfg.LogDir = filepath.Join(dataDir, "logs")
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	return cfg, nil
}

func (cfg *config) logLevel() (logger.Level, error) {
	switch cfg.LogLevel {
	case "trace":
		return logger.LevelTrace, nil
	case "debug":
		return logger.LevelDebug, nil
	case "info":
		return logger.LevelInfo, nil
	case "warn":
		return logger.LevelWarn, nil
	case "error":
		return logger.LevelError, nil
	case "critical":
		return logger.LevelCritical, nil
	default:
		return 0, errors.Errorf("unknown log level %q", cfg.LogLevel)
	}
}
