// Package local checks workbook structure without calling the remote
// rule engine: the six required sheets must exist and carry data, and
// their contents are extracted into report datasets. It is the
// fallback checker when no CHECKER_URL is configured and keeps the
// upload path usable when the rule engine is down for maintenance.
package local
