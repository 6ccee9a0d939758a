package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/ObiAU/freshdigest/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// maxMessageRunes is Telegram's limit on the text of a single message.
const maxMessageRunes = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot posts the consolidated summary of a digest to one chat.
type Bot struct {
	api    sender
	chatID int64
	log    *logrus.Entry
}

func NewBot(token string, chatID int64, log *logrus.Entry) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return newBot(api, chatID, log), nil
}

func newBot(api sender, chatID int64, log *logrus.Entry) *Bot {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Bot{
		api:    api,
		chatID: chatID,
		log:    log.WithField("component", "telegram"),
	}
}

// Publish sends the summary as plain text. Model output is Markdown that
// Telegram's own parser often rejects, so no parse mode is set.
func (b *Bot) Publish(ctx context.Context, digest models.Digest) error {
	text := formatSummaryMessage(digest)

	for i, chunk := range splitMessage(text, maxMessageRunes) {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(b.chatID, chunk)
		msg.DisableWebPagePreview = true

		if _, err := b.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send telegram message %d: %w", i+1, err)
		}
	}

	b.log.WithField("chat_id", b.chatID).Info("Summary sent to telegram")
	return nil
}

func (b *Bot) Name() string {
	return "telegram"
}

func formatSummaryMessage(digest models.Digest) string {
	return fmt.Sprintf(`📰 Market digest %s

%d articles analyzed

%s`,
		digest.Date.Format("2006-01-02"),
		len(digest.Articles),
		strings.TrimSpace(digest.Summary))
}

// splitMessage cuts text into pieces of at most limit runes, preferring to
// break after a newline.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	var chunks []string

	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
