// Package dataprocessing covers the input half of the monthly trend
// pipeline: reading raw daily records, normalizing them into a typed
// per-ticker table, and collapsing that table to monthly resolution.
//
// # Architecture
//
// The package is organized into two main components:
//
// 1. Loader: reads daily records from CSV files or Excel workbooks and
// normalizes them into a validated, chronologically ordered table
//
// 2. Aggregator: reduces each (ticker, calendar month) group of daily
// records to a single monthly record
//
// # Data Flow
//
// The typical data flow through this package:
//
//	CSV/Excel files → Loader → DailyTable → Aggregator → MonthlyTable
//
// # Error Handling
//
// Loading is strict: a single malformed row or non-positive price aborts
// the whole load with a typed error (see internal/errors) rather than
// skipping the row. Partial output across tickers is considered worse
// than a failed run.
package dataprocessing
