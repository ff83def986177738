package vote

import "golang.org/x/text/unicode/norm"

// Record is the atomic vote fact: one voter chose one venue on one day.
// Records are created only through a store and are never updated.
type Record struct {
	Venue string `json:"venue"`
	Date  Date   `json:"date"`
	Voter string `json:"voter"`
}

// NewRecord builds a Record with the voter name NFC normalized, so that
// canonically equivalent spellings of the same name share one identity.
func NewRecord(venue string, date Date, voter string) Record {
	return Record{
		Venue: venue,
		Date:  date,
		Voter: NormalizeVoter(voter),
	}
}

// NormalizeVoter returns the NFC form of a voter name.
// Whitespace is preserved; an empty name stays empty.
func NormalizeVoter(voter string) string {
	return norm.NFC.String(voter)
}
