// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package. It owns the schema
// (embedded goose migrations), opens the pgx-backed connection pool, and maps
// driver errors onto the store's error values.
package postgres
