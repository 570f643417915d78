// Package store persists trained embeddings in SQLite.
//
// The database is opened through database/sql with the pure-Go driver from
// modernc.org/sqlite, so no cgo toolchain is needed. Each training run is one
// row in `runs` (hyper-parameters, final loss, creation time) keyed by a
// random UUID, and its points live in `points` ordered by vocabulary id.
//
// All functions take the *sql.DB explicitly; the package holds no state.
package store
