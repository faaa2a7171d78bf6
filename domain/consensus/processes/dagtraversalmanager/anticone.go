package dagtraversalmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// Anticone returns every block reachable from a DAG tip that is neither an
// ancestor nor a descendant of blockHash, by breadth-first search from the
// tips down through parent edges (§4.4's GHOSTDAG mergeset classification
// walks the same relation one block's local anticone at a time; this is
// its DAG-wide counterpart).
func (dtm *dagTraversalManager) Anticone(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (
	[]*externalapi.DomainHash, error) {

	anticone := []*externalapi.DomainHash{}
	queue, err := dtm.dagTopologyManager.Tips(stagingArea)
	if err != nil {
		return nil, err
	}
	visited := make(map[externalapi.DomainHash]struct{})

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, ok := visited[*current]; ok {
			continue
		}
		visited[*current] = struct{}{}

		currentIsAncestorOfBlock, err := dtm.dagTopologyManager.IsAncestorOf(stagingArea, current, blockHash)
		if err != nil {
			return nil, err
		}
		if currentIsAncestorOfBlock {
			continue
		}

		blockIsAncestorOfCurrent, err := dtm.dagTopologyManager.IsAncestorOf(stagingArea, blockHash, current)
		if err != nil {
			return nil, err
		}
		if !blockIsAncestorOfCurrent {
			anticone = append(anticone, current)
		}

		currentParents, err := dtm.dagTopologyManager.Parents(stagingArea, current)
		if err != nil {
			return nil, err
		}
		queue = append(queue, currentParents...)
	}

	return anticone, nil
}
