// Package database adapts infrastructure/db/dbaccess's concrete handle to
// the model.DBManager/DBReader/DBWriter/DBTransaction contracts the store
// and process layers are coded against (§1, §9: no store ever depends on
// a concrete backend type).
package database

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
)

// DomainDBContext wraps a dbaccess.DatabaseContext as a model.DBManager.
type DomainDBContext struct {
	*dbaccess.DatabaseContext
}

// New wraps an already-open dbaccess.DatabaseContext.
func New(ctx *dbaccess.DatabaseContext) *DomainDBContext {
	return &DomainDBContext{DatabaseContext: ctx}
}

// Begin opens a transaction satisfying model.DBTransaction.
func (c *DomainDBContext) Begin() (model.DBTransaction, error) {
	tx, err := c.DatabaseContext.Begin()
	if err != nil {
		return nil, err
	}
	return tx, nil
}

var _ model.DBManager = (*DomainDBContext)(nil)
