// Package remote submits workbooks to the observatory's rule engine
// over HTTP and decodes its validation report. The engine owns the
// semantic checks (coordinate ranges, instrument configs, OB
// consistency); the gateway only transports bytes and renders the
// findings.
package remote
