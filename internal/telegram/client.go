// Package telegram delivers a completed price query as a Telegram message,
// for users who run warmac from cron or scripts and want the result pushed
// instead of scraped from stdout. Delivery uses bounded retry; the query
// itself is never retried.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wfm-tools/warmac/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendResult sends the computed statistic for one query.
func (c *Client) SendResult(result *models.Result) error {
	msg := tgbotapi.NewMessage(c.chatID, formatResult(result))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatResult renders a result as a MarkdownV2 message.
func formatResult(r *models.Result) string {
	value := escapeMarkdownV2(fmt.Sprintf("%.1f", r.Value))
	name := escapeMarkdownV2(r.DisplayName())
	stat := escapeMarkdownV2(r.Statistic)
	days := "days"
	if r.TimeRange == 1 {
		days = "day"
	}

	message := fmt.Sprintf("💰 *%s*: %s platinum \\(%s\\)\n", name, value, stat)
	message += fmt.Sprintf("📦 %d orders on %s over %d %s\n",
		r.OrderCount, escapeMarkdownV2(r.Platform), r.TimeRange, days)
	message += fmt.Sprintf("📈 max %d / min %d platinum", r.MaxPrice, r.MinPrice)
	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
