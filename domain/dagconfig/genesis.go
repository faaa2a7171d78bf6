package dagconfig

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
)

// genesisCoinbase is the genesis block's single coinbase transaction: no
// inputs, a fixed payload, one zero-value output.
var genesisCoinbase = &externalapi.DomainTransaction{
	Version:      0,
	Inputs:       nil,
	Outputs:      nil,
	LockTime:     0,
	SubnetworkID: externalapi.SubnetworkIDCoinbase,
	Gas:          0,
	Payload:      []byte("ghostdag-genesis"),
}

var genesisHeader = &externalapi.DomainBlockHeader{
	Version:             0,
	ParentsByLevel:       [][]*externalapi.DomainHash{{}},
	HashMerkleRoot:       consensushashing.TransactionHash(genesisCoinbase),
	AcceptedIDMerkleRoot: &externalapi.DomainHash{},
	UTXOCommitment:       &externalapi.DomainHash{},
	TimeInMilliseconds:   1_600_000_000_000,
	Bits:                 0x207fffff,
	Nonce:                0,
	DAAScore:             0,
	BlueWork:             externalapi.BlueWorkFromUint64(0),
	BlueScore:            0,
	PruningPoint:         &externalapi.DomainHash{},
}

var genesisBlock = &externalapi.DomainBlock{
	Header:       genesisHeader,
	Transactions: []*externalapi.DomainTransaction{genesisCoinbase},
}

var genesisHash = consensushashing.HeaderHash(genesisHeader)

func init() {
	SimnetParams.GenesisBlock = genesisBlock
	SimnetParams.GenesisHash = genesisHash
}
