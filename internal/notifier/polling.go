package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
)

// CommandHandler answers a chat command. A nil reply sends nothing.
type CommandHandler func(ctx context.Context, command string) *model.Message

const pollRetryDelay = 5 * time.Second

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	log := logger.OrNop(t.Logger)
	client := &http.Client{Timeout: 35 * time.Second}
	if t.Client != nil {
		client.Transport = t.Client.Transport
	}

	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info("telegram polling stopped")
			return
		}
		next, err := t.poll(ctx, client, offset, 30, handler)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("telegram polling stopped")
				return
			}
			log.Warn("telegram polling failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryDelay):
			}
			continue
		}
		offset = next
	}
}

// poll fetches one batch of updates, dispatches them and returns the next offset.
func (t *TelegramNotifier) poll(ctx context.Context, client *http.Client, offset, timeout int, handler CommandHandler) (int, error) {
	log := logger.OrNop(t.Logger)
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=%d", t.methodURL("getUpdates"), offset, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return offset, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return offset, fmt.Errorf("polling request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return offset, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return offset, fmt.Errorf("getUpdates: status %d", resp.StatusCode)
	}

	for _, update := range result.Result {
		offset = update.UpdateID + 1
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		text := strings.TrimSpace(update.Message.Text)
		log.Info("received command", zap.String("command", text))
		reply := handler(ctx, text)
		if reply == nil {
			continue
		}
		if err := t.Send(ctx, *reply); err != nil {
			log.Error("send reply", zap.String("command", text), zap.Error(err))
		}
	}
	return offset, nil
}
