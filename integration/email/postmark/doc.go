// Package postmark delivers upload notifications through the Postmark
// transactional mail API, for deployments without a local SMTP relay.
package postmark
