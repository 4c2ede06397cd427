package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a record or collection does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCollectionModified is returned when a conditional write finds the
	// collection changed after the caller's X-If-Unmodified-Since.
	ErrCollectionModified = errors.New("collection modified since the given timestamp")

	// ErrBatchNotFound is returned when a batch id is unknown, already
	// committed or belongs to another collection.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrItemNotFound is returned by the passwords store for unknown ids.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidLogin is returned when a login lacks its origin or password.
	ErrInvalidLogin = errors.New("login must have an origin and a password")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
