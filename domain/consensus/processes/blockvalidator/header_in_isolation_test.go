package blockvalidator

import (
	"math/big"
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockheaderstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/workcalc"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

// newIsolationTestValidator builds a blockValidator with only the fields
// ValidateHeaderInIsolation and checkProofOfWork touch populated -- the
// rest of the dependency graph (managers wired against a whole DAG) isn't
// needed for these two isolated checks.
func newIsolationTestValidator(genesisHash *externalapi.DomainHash, maxBlockParents int, powMax *big.Int, skipPoW bool, blockHeaderStore model.BlockHeaderStore) *blockValidator {
	return &blockValidator{
		powMax:           powMax,
		skipPoW:          skipPoW,
		genesisHash:      genesisHash,
		maxBlockParents:  maxBlockParents,
		blockHeaderStore: blockHeaderStore,
	}
}

func TestValidateHeaderInIsolationRejectsEmptyParentsForNonGenesis(t *testing.T) {
	stagingArea := model.NewStagingArea()
	store := blockheaderstore.New()
	genesisHash := testHash(0)

	blockHash := testHash(1)
	store.Stage(stagingArea, blockHash, &externalapi.DomainBlockHeader{})

	v := newIsolationTestValidator(genesisHash, 10, big.NewInt(0), true, store)
	if err := v.ValidateHeaderInIsolation(stagingArea, blockHash); err == nil {
		t.Fatalf("expected a non-genesis block with no parents to be rejected")
	}
}

func TestValidateHeaderInIsolationAcceptsGenesisWithNoParents(t *testing.T) {
	stagingArea := model.NewStagingArea()
	store := blockheaderstore.New()
	genesisHash := testHash(0)

	store.Stage(stagingArea, genesisHash, &externalapi.DomainBlockHeader{})

	v := newIsolationTestValidator(genesisHash, 10, big.NewInt(0), true, store)
	if err := v.ValidateHeaderInIsolation(stagingArea, genesisHash); err != nil {
		t.Fatalf("expected genesis with no parents to be accepted, got %+v", err)
	}
}

func TestValidateHeaderInIsolationRejectsTooManyParents(t *testing.T) {
	stagingArea := model.NewStagingArea()
	store := blockheaderstore.New()
	genesisHash := testHash(0)

	blockHash := testHash(1)
	store.Stage(stagingArea, blockHash, &externalapi.DomainBlockHeader{
		ParentsByLevel: [][]*externalapi.DomainHash{{testHash(10), testHash(11), testHash(12)}},
	})

	v := newIsolationTestValidator(genesisHash, 2, big.NewInt(0), true, store)
	if err := v.ValidateHeaderInIsolation(stagingArea, blockHash); err == nil {
		t.Fatalf("expected a block with more parents than maxBlockParents to be rejected")
	}
}

func TestValidateHeaderInIsolationRejectsUnsortedParents(t *testing.T) {
	stagingArea := model.NewStagingArea()
	store := blockheaderstore.New()
	genesisHash := testHash(0)

	blockHash := testHash(1)
	store.Stage(stagingArea, blockHash, &externalapi.DomainBlockHeader{
		ParentsByLevel: [][]*externalapi.DomainHash{{testHash(20), testHash(10)}},
	})

	v := newIsolationTestValidator(genesisHash, 10, big.NewInt(0), true, store)
	if err := v.ValidateHeaderInIsolation(stagingArea, blockHash); err == nil {
		t.Fatalf("expected out-of-order parents to be rejected")
	}
}

func TestValidateHeaderInIsolationAcceptsSortedParentsWithinLimit(t *testing.T) {
	stagingArea := model.NewStagingArea()
	store := blockheaderstore.New()
	genesisHash := testHash(0)

	blockHash := testHash(1)
	store.Stage(stagingArea, blockHash, &externalapi.DomainBlockHeader{
		ParentsByLevel: [][]*externalapi.DomainHash{{testHash(10), testHash(20)}},
	})

	v := newIsolationTestValidator(genesisHash, 10, big.NewInt(0), true, store)
	if err := v.ValidateHeaderInIsolation(stagingArea, blockHash); err != nil {
		t.Fatalf("expected sorted parents within the limit to be accepted, got %+v", err)
	}
}

func TestCheckProofOfWorkRejectsTargetAbovePowMax(t *testing.T) {
	powMax := workcalc.TargetFromBits(0x1d00ffff)
	v := newIsolationTestValidator(testHash(0), 10, powMax, true, nil)

	// 0x1d00ffff's own target is not above powMax (equal), so push further
	// out via a larger exponent to get a strictly larger target.
	header := &externalapi.DomainBlockHeader{Bits: 0x1e00ffff}
	if err := v.checkProofOfWork(header); err == nil {
		t.Fatalf("expected a target looser than powMax to be rejected")
	}
}

func TestCheckProofOfWorkAcceptsInRangeTargetWhenSkipped(t *testing.T) {
	powMax := workcalc.TargetFromBits(0x1d00ffff)
	v := newIsolationTestValidator(testHash(0), 10, powMax, true, nil)

	header := &externalapi.DomainBlockHeader{Bits: 0x1d00ffff}
	if err := v.checkProofOfWork(header); err != nil {
		t.Fatalf("expected an in-range target to be accepted with PoW checking skipped, got %+v", err)
	}
}
