package main

import (
	"time"

	"qgate/core/cookie"
	"qgate/core/server"
)

// Config is the top-level env section for the gateway process. Driver
// sections with required variables (S3, Redis, SMTP, Postmark, the
// remote checker) are loaded separately in main, only when the chosen
// driver needs them.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"qgate"`
	Environment string `env:"APP_ENV" envDefault:"production"` // production or development

	// Session configuration
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"qgate_session"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"3h"`
	SessionStore string        `env:"SESSION_STORE" envDefault:"file"` // file or redis
	SessionDir   string        `env:"SESSION_DIR" envDefault:"./data/sessions"`
	SessionSweep time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`

	// Upload storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"` // local or s3
	StorageDir    string `env:"STORAGE_DIR" envDefault:"./data/uploads"`

	// Validation service. Empty URL runs the embedded checker in
	// process.
	CheckerURL string `env:"CHECKER_URL"`

	// Online sheet export endpoint. Empty disables the sheet_name
	// input on the form.
	SheetsExportURL string `env:"SHEETS_EXPORT_URL"`

	// Upload notification mail. Driver off disables notifications.
	MailDriver string `env:"MAIL_DRIVER" envDefault:"off"` // smtp, postmark, dev or off
	MailNotify string `env:"MAIL_NOTIFY"`
	MailDevDir string `env:"MAIL_DEV_DIR" envDefault:"./data/mail"`

	// BodyLimit bounds request bodies, workbook included.
	BodyLimit int64 `env:"BODY_LIMIT" envDefault:"33554432"` // 32 MiB

	Cookie cookie.Config
	Server server.Config
}
