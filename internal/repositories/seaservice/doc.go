// Package seaservice is the local persistence layer for Sea Service records.
//
// # Overview
//
// Records live in one SQLite table, sea_service_records. The payload column
// holds the serialized models.SeaServicePayload; ship_name and imo_number are
// denormalized copies kept for listings.
//
// # Schema evolution
//
// Open applies the embedded goose migrations and then reconciles columns:
// any column of the current shape missing from an older database is appended
// with a safe default. Columns are never dropped, renamed or retyped.
//
// # Invariants enforced here
//
//   - at most one row with status DRAFT (partial unique index)
//   - FINAL rows are never updated or deleted (WHERE clauses plus triggers)
//   - a payload that fails to parse is replaced by the default payload and
//     logged; reads never fail because of it
//
// Typical Usage
//
//	db, _ := seaservice.Open(ctx, "seabook.db", logger)
//	repo := seaservice.NewSQLiteRepository(db, logger, m)
//	draft, err := repo.GetActiveDraft(ctx)
package seaservice
