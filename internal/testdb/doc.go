// Package testdb provides utilities for database integration tests.
//
// GetTestDBWithT connects to the database named by DATABASE_URL (or
// NASDA_TEST_DB_URL), applies the embedded migrations once per process and
// skips the test when no database is configured. WithTx runs a test body in
// a transaction that is always rolled back, so tests can share one database
// and run in parallel.
//
// Typical use:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    userID := testdb.MustInsertUser(t, tx, "fan")
//	    ...
//	})
package testdb
