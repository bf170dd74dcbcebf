package postmark

// Config holds Postmark API credentials and addressing.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail  string `env:"MAIL_SENDER,required"`
	ReplyToEmail string `env:"MAIL_REPLY_TO,required"`
}
