// Package database models the external program-graph database the matcher
// queries (§6, "Database interface (consumed)"). Only the shape consumed by
// this pipeline is modeled here: the database itself is out of scope (§1).
//
// The interfaces mirror the teacher's broker.Broker split — a request/
// response collaborator with an explicit open/close lifecycle — adapted
// from message production/consumption to query submission.
package database

import (
	"context"
	"fmt"
)

// Attribute is a single graph-database value; only its integer form is
// consumed by this pipeline (§6: "an attribute whose `.value` is the
// underlying integer").
type Attribute struct {
	value int64
}

// NewAttribute builds an Attribute wrapping value.
func NewAttribute(value int64) Attribute { return Attribute{value: value} }

// Value returns the attribute's underlying integer.
func (a Attribute) Value() int64 { return a.value }

// Row is one result row: a mapping from a query-variable name (the `$l<id>`
// names from the generated `get` clause, keyed without the leading `$`) to
// its attribute.
type Row map[string]Attribute

// Database is an opened handle to a single named graph database.
type Database interface {
	// Query submits query text and returns its result rows. It is a
	// synchronous request/response; no retry is performed at this layer
	// (§5).
	Query(ctx context.Context, text string) ([]Row, error)

	// Close releases the underlying session. Close is idempotent.
	Close() error
}

// Manager checks for and opens named databases by handle (§6: "opened by
// name via a DatabaseManager(host, port)"); an opened Database is closed
// through its own Close.
type Manager interface {
	// Exists reports whether a database named id is present. Open performs
	// this existence check itself before opening (§6).
	Exists(ctx context.Context, id string) (bool, error)

	// Open opens the database named id. It fails with *UnknownDatabase if
	// the database does not exist.
	Open(ctx context.Context, id string) (Database, error)
}

// UnknownDatabase reports that a matcher asked for a database that does not
// exist (§7.4).
type UnknownDatabase struct {
	ID string
}

func (e *UnknownDatabase) Error() string {
	return fmt.Sprintf("database %q does not exist", e.ID)
}

// QueryExecutionError reports that the database rejected a generated query
// (§7.6).
type QueryExecutionError struct {
	Query string
	Err   error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }
