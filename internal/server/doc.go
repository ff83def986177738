// Package server exposes the vote form and results over HTTP.
//
// Routes:
//
//	GET  /              vote form generated from the catalog
//	POST /vote          record a submission, 303 to /results
//	GET  /results       today's ranked tally (HTML)
//	GET  /results.json  today's ranked tally (JSON)
//	GET  /error         validation failure page (?reason=<code>)
//	GET  /health        liveness probe
//	GET  /debug/votes   every stored record (only with debug enabled)
//
// Validation failures redirect to /error with the intake reason code.
// Storage failures answer 500 with a visible message; they are never
// turned into a redirect to /results.
package server
