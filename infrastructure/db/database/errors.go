package database

import "github.com/pkg/errors"

// ErrNotFound is returned by a Database/Transaction's Get when the
// requested key is absent, for backends (like ldb.LevelDB) to translate
// their own not-found signal into.
var ErrNotFound = errors.New("key not found")
