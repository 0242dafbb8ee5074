// Package ledger holds the pure computations behind the finance screens:
// filtering and sorting transactions, deriving statistics, budget ratios and
// warnings, period windows, and the reducers that produce new transaction and
// budget lists from commands.
//
// Nothing in this package performs I/O or reads the clock; callers pass the
// reference date explicitly.
package ledger
