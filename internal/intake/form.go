package intake

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/roach88/lunchvote/internal/catalog"
)

// VoterField is the form field holding the voter's name.
// Every other field is a venue key from the catalog.
const VoterField = "username"

// Submission is a validated vote form.
type Submission struct {
	Voter string

	// Venues holds the selected venue keys in catalog order.
	Venues []string
}

// ParseForm validates an application/x-www-form-urlencoded body.
//
// Checks run in order: UTF-8 encoding, form syntax and field names, then
// the voter name. A venue flag accepts "on", "true" or "1" as selected and
// "off", "false", "0" or an empty value as not selected; omitted flags are
// not selected.
func ParseForm(body []byte, cat *catalog.Catalog) (Submission, error) {
	if !utf8.Valid(body) {
		return Submission{}, invalid(ReasonInvalidEncoding, ErrInvalidEncoding, "")
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return Submission{}, invalid(ReasonMalformedForm, ErrMalformedForm, err.Error())
	}

	return ParseValues(values, cat)
}

// ParseValues validates already-decoded form values.
func ParseValues(values url.Values, cat *catalog.Catalog) (Submission, error) {
	for field, vals := range values {
		if !utf8.ValidString(field) {
			return Submission{}, invalid(ReasonInvalidEncoding, ErrInvalidEncoding, "")
		}
		for _, v := range vals {
			if !utf8.ValidString(v) {
				return Submission{}, invalid(ReasonInvalidEncoding, ErrInvalidEncoding, field)
			}
		}
	}

	selected := make(map[string]bool)
	for field, vals := range values {
		if field == VoterField {
			continue
		}
		if !cat.Contains(field) {
			return Submission{}, invalid(ReasonMalformedForm, ErrMalformedForm, "unknown field "+field)
		}
		on, ok := parseFlag(vals[len(vals)-1])
		if !ok {
			return Submission{}, invalid(ReasonMalformedForm, ErrMalformedForm, "field "+field+" is not a boolean")
		}
		selected[field] = on
	}

	voter := values.Get(VoterField)
	if voter == "" {
		return Submission{}, invalid(ReasonMissingVoter, ErrMissingVoter, "")
	}

	sub := Submission{Voter: voter}
	for _, key := range cat.Keys() {
		if selected[key] {
			sub.Venues = append(sub.Venues, key)
		}
	}
	return sub, nil
}

func parseFlag(v string) (on, ok bool) {
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0", "":
		return false, true
	default:
		return false, false
	}
}
