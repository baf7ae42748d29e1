package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avandyk/marketbrief/internal/models"
)

// Telegram hard limits.
const (
	maxMessageLen = 4096
	maxCaptionLen = 1024
)

// Notifier publishes the finished report to a Telegram channel. The first
// selected chart rides along as a photo with the summary as its caption.
type Notifier struct {
	api       *tgbotapi.BotAPI
	channelID string
}

func NewNotifier(token, channelID string) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Notifier{
		api:       api,
		channelID: normalizeChannelID(channelID),
	}, nil
}

// SendReport delivers the English section of the document to the channel.
func (n *Notifier) SendReport(doc *models.AnalysisDocument) error {
	english, ok := doc.EnglishBlock()
	if !ok {
		return fmt.Errorf("document has no language blocks")
	}

	date := doc.GeneratedAt.Format("2006-01-02")

	if len(doc.Images) > 0 {
		photo := n.photoConfig(doc.Images[0])
		photo.Caption = FormatMessage(date, english, maxCaptionLen)
		if _, err := n.api.Send(photo); err != nil {
			return fmt.Errorf("failed to send telegram photo: %w", err)
		}
		return nil
	}

	msg := n.messageConfig(FormatMessage(date, english, maxMessageLen))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func (n *Notifier) photoConfig(img models.ChartImage) tgbotapi.PhotoConfig {
	file := tgbotapi.FileBytes{Name: img.ID + "." + img.Format, Bytes: img.Data}
	if chatID, ok := numericChatID(n.channelID); ok {
		return tgbotapi.NewPhoto(chatID, file)
	}
	return tgbotapi.NewPhotoToChannel(n.channelID, file)
}

func (n *Notifier) messageConfig(text string) tgbotapi.MessageConfig {
	if chatID, ok := numericChatID(n.channelID); ok {
		return tgbotapi.NewMessage(chatID, text)
	}
	return tgbotapi.NewMessageToChannel(n.channelID, text)
}

// FormatMessage renders the headline plus insight bullets, truncated to the
// given Telegram limit without splitting a UTF-8 rune.
func FormatMessage(date string, english models.LanguageBlock, limit int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\U0001F4C8 Daily Financial Summary - %s\n\n", date)
	for _, insight := range english.Insights {
		fmt.Fprintf(&sb, "• %s\n", insight)
	}
	if english.Provenance.Fallback {
		sb.WriteString("\n(placeholder content: live generation was unavailable)")
	}

	text := sb.String()
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && len(string(runes)) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// normalizeChannelID prefixes public channel names with @; numeric chat IDs
// pass through untouched.
func normalizeChannelID(channelID string) string {
	if channelID == "" || strings.HasPrefix(channelID, "@") || strings.HasPrefix(channelID, "-") {
		return channelID
	}
	if _, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		return channelID
	}
	return "@" + channelID
}

func numericChatID(channelID string) (int64, bool) {
	id, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
