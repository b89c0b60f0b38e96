// Package stoier turns bank account exports into bookkeeping accounts.
//
// The pipeline reads CSV exports of a bank account and moves them through
// stages, each one reading the latest snapshot of the previous stage and
// writing a new, timestamped snapshot:
//   - Import: CSV exports are read into records, one map of column to value
//     per row (ImportCSV).
//   - Clean: amounts and balances in the bank format become plain decimals
//     (Clean).
//   - Deduplicate: overlapping exports are merged into a Ledger where each
//     distinct record appears once, identified by its date and its rank on
//     that day (Deduplicator).
//   - Validate: balances are checked against amounts, and an assignment
//     skeleton is produced to be completed by hand (Validate).
//   - Book: every transaction is posted to its net, gross and VAT accounts
//     according to its Assignment (Booker).
//
// Amounts are exact decimals, VAT splits are rounded to Round places with
// banker's rounding.
package stoier
