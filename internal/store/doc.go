// Package store provides a SQLite-backed ledger of mark transplants.
//
// Every mark the CLI copies into a destination log is recorded with the
// pattern that located it, the offsets that were computed and the chain of
// source logs. The ledger lets annotators audit which marks in a log were
// derived rather than scored.
//
// # Ordering
//
//   - Rows are ordered by seq, a logical counter issued by NextSeq, never
//     by wall-clock time.
//   - All queries use ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
