// Package core provides the domain logic for the daily reflections database.
//
// The package is independent of any UI or transport layer; the CLI, the web
// handlers and the exporters all go through [Service].
//
// # Data Model
//
// A [Reflection] is one day's entry in one [Language]. The pair
// (date, language) is unique. Rows are only created or replaced by
// [Service.Import], one language partition at a time.
//
// # Reads
//
// [Service.GetByDate], [Service.GetToday], [Service.GetRandom],
// [Service.Search], [Service.GetByMonth], [Service.GetAllLanguages],
// [Service.ListByLanguage] and [Service.GetStatistics] each borrow one pooled
// connection for a single query. Lookups that match nothing return
// [ErrNotFound].
//
// # Import
//
// The import flow is:
//
//  1. Check the CSV exists (nothing is touched otherwise)
//  2. Create the table if missing
//  3. Delete the target partition inside a transaction
//  4. Stream the file through [WrapForStreaming] and locate the header
//  5. Upsert each matching row inside its own savepoint
//  6. Commit, then verify the stored count
//
// Every processed row produces a [RowResult] in the [ImportResult].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - REF001: Reflection not found
//   - VAL001-VAL004: Invalid input (date, month, language, argument)
//   - FILE001-FILE003: Import file problems
//   - IMP001: Strict import aborted
//   - DB001-DB004: Database errors
//   - REQ001-REQ002: Cancelled or timed out
package core
