// Package notify delivers prediction alerts to a Telegram chat.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between any two Telegram messages to the same chat to avoid 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier sends prediction alerts to a single chat.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier and verifies the bot token. Returns
// nil when the bot cannot be reached so callers can treat alerts as optional.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// Send delivers one message, waiting out the per-chat rate limit if the
// previous send was too recent.
func (n *TelegramNotifier) Send(text string) error {
	if n == nil || n.bot == nil {
		return fmt.Errorf("telegram notifier not initialized")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if elapsed := time.Since(n.lastSend); elapsed < telegramSendInterval {
		time.Sleep(telegramSendInterval - elapsed)
	}
	n.lastSend = time.Now()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
