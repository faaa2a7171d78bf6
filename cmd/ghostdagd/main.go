// ghostdagd is the consensus daemon's process entry point: parse config,
// open (or bootstrap) the active consensus instance, and block until a
// termination signal arrives. Grounded on the teacher's kaspad.go
// (the kaspad wrapper type's start/stop lifecycle) pruned to the
// consensus-only surface this repo builds (§1 excludes the P2P/RPC
// layers kaspad.go also wires up).
package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus"
	"github.com/ghostdag-labs/ghostdagd/domain/dagconfig"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/logger"
)

var log = logger.BackendLog.Logger(logger.SubsystemDaemon)

func main() {
	if err := run(); err != nil {
		fatalf("%+v", err)
	}
}

func run() error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	level, err := cfg.logLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if err := logger.BackendLog.InitRotator(filepath.Join(cfg.LogDir, defaultLogFilename), defaultMaxLogRolls); err != nil {
		return err
	}

	log.Infof("starting %s, data directory %s", appName, cfg.DataDir)

	factory, err := consensus.NewFactory(cfg.DataDir, &dagconfig.SimnetParams)
	if err != nil {
		return err
	}

	activeConsensus, err := factory.NewActiveConsensus()
	if err != nil {
		return err
	}

	selectedParent, err := activeConsensus.GetVirtualSelectedParent()
	if err != nil {
		return err
	}
	log.Infof("active consensus ready, virtual selected parent %s", selectedParent)

	waitForShutdown()
	log.Infof("%s shutting down", appName)
	return nil
}

func waitForShutdown() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
}

func fatalf(format string, args ...interface{}) {
	log.Criticalf(format, args...)
	os.Exit(1)
}
