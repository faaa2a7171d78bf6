package blockprocessor

import "github.com/ghostdag-labs/ghostdagd/infrastructure/logger"

var log = logger.BackendLog.Logger(logger.SubsystemConsensus)
