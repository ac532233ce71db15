// Package database owns the photos table: schema, buffered idempotent
// ingestion, filtered reads and counts, and orphan cleanup.
//
// Every public operation opens its own SQLite connection and closes it
// before returning. The store is therefore safe to use from independent
// operations without shared locking, as long as writers do not overlap:
// the insert buffer belongs to exactly one ingestion run, whose orchestrator
// is the only caller of Insert and Flush.
package database
