// Package vote defines the domain types shared by the store, tally and
// intake packages.
//
// This package contains type definitions only. All other internal packages
// import vote; vote imports nothing internal.
//
// Key constraints:
//   - Date is a calendar day with no time-of-day component
//   - A Record is identified by its (Venue, Date, Voter) triple
//   - Voter names are NFC normalized before they reach the store
package vote
