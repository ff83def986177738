// Package intake turns a submitted vote form into store writes.
//
// ParseForm validates the raw urlencoded body against the catalog; Submit
// records one vote per selected venue for the server's current day. Neither
// step calls the store for an invalid submission.
//
// Validation failures are *ValidationError values carrying a stable Reason
// code that the HTTP layer forwards to the user. Storage failures are passed
// through unchanged and are never reported as success.
package intake
