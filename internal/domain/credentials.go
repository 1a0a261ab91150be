package domain

// Credentials is the closed variant over channel secrets. Values are
// decoded once per invocation, held in memory only, and never logged.
type Credentials interface {
	Channel() Channel
}

type SlackCreds struct {
	WebhookURL string
}

func (SlackCreds) Channel() Channel { return ChannelSlack }

type TelegramCreds struct {
	BotToken string
	ChatID   string
}

func (TelegramCreds) Channel() Channel { return ChannelTelegram }
