package smtp

// Config holds SMTP server settings. All connection fields are
// required so a misconfigured gateway fails at startup instead of on
// the first notification.
type Config struct {
	Host         string `env:"SMTP_HOST,required"`
	Port         int    `env:"SMTP_PORT" envDefault:"587"`
	Username     string `env:"SMTP_USERNAME,required"`
	Password     string `env:"SMTP_PASSWORD,required"`
	TLSMode      string `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls, tls, or plain
	SenderEmail  string `env:"MAIL_SENDER,required"`
	ReplyToEmail string `env:"MAIL_REPLY_TO,required"`
}
