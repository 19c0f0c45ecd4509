package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
)

// DefaultTelegramAPI is the Bot API base URL.
const DefaultTelegramAPI = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
// Messages always go to ChatID; Message.To is ignored.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
	Logger   *logger.Logger
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string, log *logger.Logger) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  DefaultTelegramAPI,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Logger: logger.OrNop(log),
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Send posts the subject and body as text, then each attachment as a document.
// Plain bodies are escaped for the HTML parse mode.
func (t *TelegramNotifier) Send(ctx context.Context, msg model.Message) error {
	text := msg.Body
	if !msg.Markup {
		text = html.EscapeString(text)
	}
	if msg.Subject != "" {
		text = "<b>" + html.EscapeString(msg.Subject) + "</b>\n\n" + text
	}
	if err := t.SendText(ctx, text); err != nil {
		return err
	}
	for _, a := range msg.Attachments {
		if err := t.sendDocument(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// SendText sends an HTML formatted message to the configured chat.
func (t *TelegramNotifier) SendText(ctx context.Context, text string) error {
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return t.post(ctx, "sendMessage", "application/json", bytes.NewReader(body))
}

func (t *TelegramNotifier) sendDocument(ctx context.Context, a model.Attachment) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", t.ChatID); err != nil {
		return fmt.Errorf("write chat_id: %w", err)
	}
	part, err := w.CreateFormFile("document", a.Name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return fmt.Errorf("write %s: %w", a.Name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}
	return t.post(ctx, "sendDocument", w.FormDataContentType(), &body)
}

func (t *TelegramNotifier) post(ctx context.Context, method, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL(method), body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client().Do(req)
	if err != nil {
		return transmissionErr(method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return transmissionErr(method, fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody)))
	}
	return nil
}

func (t *TelegramNotifier) methodURL(method string) string {
	base := t.APIBase
	if base == "" {
		base = DefaultTelegramAPI
	}
	return fmt.Sprintf("%s/bot%s/%s", base, t.BotToken, method)
}

func (t *TelegramNotifier) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}
