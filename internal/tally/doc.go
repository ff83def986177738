// Package tally ranks venues by the number of votes they received on one day.
//
// Compute is the only place counting happens. It groups the day's records
// by venue key, so a venue nobody voted for produces no row at all; it is
// never padded from the catalog.
//
// Rows are ordered by count, highest first. Equal counts keep catalog
// definition order. Keys that are not in the catalog come last, by key.
package tally
