// Package postgres provides PostgreSQL implementations of the store
// interfaces, backed by database/sql with the pgx driver. Errors are
// normalized to the store package's taxonomy via MapError.
package postgres
