package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a new user cannot be created
	// because the username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrDatasetNotFound is returned when no dataset has the requested ID.
	ErrDatasetNotFound = errors.New("dataset was not found")

	// ErrSessionNotFound is returned when a session does not exist or has
	// been evicted by the store.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrFileNotFound is returned when a blob key does not name a stored file.
	ErrFileNotFound = errors.New("file was not found")

	// ErrInvalidFileKey is returned for keys that are empty or escape the
	// storage root.
	ErrInvalidFileKey = errors.New("invalid file key")

	// ErrUnsupportedDSN is returned when the database DSN matches no
	// supported driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	// ErrUnsupportedDriver is returned for unknown file or session drivers.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) without a result set fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
