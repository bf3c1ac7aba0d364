// Package analysis turns a ticker history into the aggregates shown on the
// dividend dashboard.
//
// Dividends are grouped three ways: amount per calendar quarter, number of
// payments per year and total amount per year. Sums are exact decimal sums
// so the aggregates always add back up to the sum of the input amounts.
//
// Close prices are summarized by their population mean and exact median.
// An empty price history yields ErrNoData instead of a zero statistic.
//
// Every function is pure: inputs are not modified and results are freshly
// allocated, so callers may use them concurrently.
package analysis
