// Package gateway is the HTTP face of the queue spreadsheet service. It
// serves two routes: GET / renders the submission form and POST /submit
// runs one request through session resolution, optional logout and login,
// and exactly one of three actions: check a spreadsheet, check and
// upload it, or list a proposal's stored files.
//
// The gateway is stateless across requests. The client holds a signed
// envelope cookie with its session snapshot; every request re-validates
// the envelope id against the session store, so a tampered or stale
// cookie simply degrades to an anonymous request.
//
// Validation output is never fail-fast: every finding of a submission is
// rendered in one round trip, errors first, warnings after. Storage and
// authentication problems do fail fast and terminate the request with
// their own page.
package gateway
