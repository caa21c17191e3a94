// Package constants holds shared configuration constants.
package constants

const (
	// EnvDevelop marks the local development environment.
	EnvDevelop = "develop"
	// EnvProduction marks the production environment.
	EnvProduction = "production"
)

const (
	// PubSubProviderNoop disables event publishing.
	PubSubProviderNoop = "noop"
	// PubSubProviderLocal publishes to a local HTTP endpoint in push format.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// MailProviderNoop logs outgoing mail instead of sending it.
	MailProviderNoop = "noop"
	// MailProviderSMTP delivers mail over SMTP.
	MailProviderSMTP = "smtp"
)
