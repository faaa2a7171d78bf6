package logger

// Subsystem tags, as the teacher's SubsystemTags enumerates ADXR/AMGR/...
// The consensus core only needs its own tag; RPC/P2P subsystems are out
// of this repo's scope (§1) and aren't named here.
const (
	SubsystemConsensus = "CONS"
	SubsystemDatabase  = "BCDB"
	SubsystemDaemon    = "GHSD"
)
