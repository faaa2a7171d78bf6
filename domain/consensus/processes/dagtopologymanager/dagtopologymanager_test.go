package dagtopologymanager

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockrelationstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockstatusstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

func newTestManager() model.DAGTopologyManager {
	return New(nil, nil, blockrelationstore.New(0), blockstatusstore.New())
}

func TestSetParentsWiresRelationsAndTips(t *testing.T) {
	dtm := newTestManager()
	stagingArea := model.NewStagingArea()

	genesisHash := testHash(0)
	if err := dtm.SetParents(stagingArea, genesisHash, nil); err != nil {
		t.Fatalf("SetParents (genesis): %+v", err)
	}

	tips, err := dtm.Tips(stagingArea)
	if err != nil {
		t.Fatalf("Tips: %+v", err)
	}
	if len(tips) != 1 || !tips[0].Equal(genesisHash) {
		t.Fatalf("expected genesis to be the sole tip, got %v", tips)
	}

	child := testHash(1)
	if err := dtm.SetParents(stagingArea, child, []*externalapi.DomainHash{genesisHash}); err != nil {
		t.Fatalf("SetParents (child): %+v", err)
	}

	tips, err = dtm.Tips(stagingArea)
	if err != nil {
		t.Fatalf("Tips after child: %+v", err)
	}
	if len(tips) != 1 || !tips[0].Equal(child) {
		t.Fatalf("expected genesis to be replaced by its child as the sole tip, got %v", tips)
	}

	parents, err := dtm.Parents(stagingArea, child)
	if err != nil {
		t.Fatalf("Parents: %+v", err)
	}
	if len(parents) != 1 || !parents[0].Equal(genesisHash) {
		t.Fatalf("expected child's parents to be [genesis], got %v", parents)
	}

	children, err := dtm.Children(stagingArea, genesisHash)
	if err != nil {
		t.Fatalf("Children: %+v", err)
	}
	if len(children) != 1 || !children[0].Equal(child) {
		t.Fatalf("expected genesis's children to be [child], got %v", children)
	}

	isParent, err := dtm.IsParentOf(stagingArea, genesisHash, child)
	if err != nil {
		t.Fatalf("IsParentOf: %+v", err)
	}
	if !isParent {
		t.Fatalf("expected genesis to be recognized as child's parent")
	}
}

func TestSetParentsWithMultipleChildrenKeepsBothTips(t *testing.T) {
	dtm := newTestManager()
	stagingArea := model.NewStagingArea()

	genesisHash := testHash(0)
	if err := dtm.SetParents(stagingArea, genesisHash, nil); err != nil {
		t.Fatalf("SetParents (genesis): %+v", err)
	}

	childA := testHash(1)
	childB := testHash(2)
	if err := dtm.SetParents(stagingArea, childA, []*externalapi.DomainHash{genesisHash}); err != nil {
		t.Fatalf("SetParents (childA): %+v", err)
	}
	if err := dtm.SetParents(stagingArea, childB, []*externalapi.DomainHash{genesisHash}); err != nil {
		t.Fatalf("SetParents (childB): %+v", err)
	}

	tips, err := dtm.Tips(stagingArea)
	if err != nil {
		t.Fatalf("Tips: %+v", err)
	}
	if len(tips) != 2 {
		t.Fatalf("expected two tips after two independent children, got %v", tips)
	}
}
