package telegram

import (
	"fmt"
	"strings"

	"go-bdjobs-e2e/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxFailuresListed caps the failure lines of a summary message.
const maxFailuresListed = 10

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// FormatSummary renders run as a MarkdownV2 message.
func FormatSummary(run models.RunSummary) string {
	passed := run.Count(models.StatusPassed)
	failed := run.Count(models.StatusFailed)
	skipped := run.Count(models.StatusSkipped)

	icon := "✅"
	if failed > 0 {
		icon = "❌"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *E2E run: %s*\n", icon, escapeMarkdown(run.Package))
	fmt.Fprintf(&b, "🆔 `%s`\n", escapeMarkdown(run.RunID))
	fmt.Fprintf(&b, "✔️ %d passed  ✖️ %d failed  ⏭ %d skipped\n", passed, failed, skipped)
	fmt.Fprintf(&b, "⏱ %s\n", escapeMarkdown(run.Duration().Round(1e9).String()))

	failures := run.Failures()
	for i, f := range failures {
		if i == maxFailuresListed {
			fmt.Fprintf(&b, "… and %d more\n", len(failures)-maxFailuresListed)
			break
		}
		line := "• " + escapeMarkdown(f.Name)
		if f.Error != "" {
			line += ": " + escapeMarkdown(f.Error)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (b *Bot) SendSummary(run models.RunSummary) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatSummary(run))
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
