package dbaccess

// Logical key-value prefixes (§6). Exact byte layout beyond the prefix
// itself is not mandated by the spec; each store appends its own key
// (typically a hash, or a hash plus a level/index) after the prefix.
var (
	PrefixHeader              = []byte("HEADER")
	PrefixBlockTransactions   = []byte("BLOCK_TX")
	PrefixGHOSTDAG            = []byte("GHOSTDAG")
	PrefixReachability        = []byte("REACHABILITY")
	PrefixRelations           = []byte("RELATIONS")
	PrefixStatuses            = []byte("STATUSES")
	PrefixUTXODiff            = []byte("UTXO_DIFF")
	PrefixAcceptanceData      = []byte("ACCEPTANCE_DATA")
	PrefixPruningPoint        = []byte("PRUNING_POINT")
	PrefixPastPruningPoints   = []byte("PAST_PRUNING_POINTS")
	PrefixSelectedChain       = []byte("SELECTED_CHAIN")
	PrefixHeadersSelectedTip  = []byte("HEADERS_SELECTED_TIP")
	PrefixDepth               = []byte("DEPTH")
	PrefixMultiConsensusMeta  = []byte("MULTI_CONSENSUS_META")
	PrefixConsensusEntries    = []byte("CONSENSUS_ENTRIES")
	PrefixVirtualState        = []byte("VIRTUAL_STATE")
)

// LevelKey appends a GHOSTDAG-per-level or RELATIONS-per-level suffix to
// the given prefix, as named in §6 ("GHOSTDAG(level)", "RELATIONS(level)").
func LevelKey(prefix []byte, level int) []byte {
	key := make([]byte, 0, len(prefix)+2)
	key = append(key, prefix...)
	key = append(key, '-', byte(level))
	return key
}

// HashKey appends a hash's bytes to a prefix to form a full store key.
func HashKey(prefix []byte, hashBytes []byte) []byte {
	key := make([]byte, 0, len(prefix)+1+len(hashBytes))
	key = append(key, prefix...)
	key = append(key, '/')
	key = append(key, hashBytes...)
	return key
}
