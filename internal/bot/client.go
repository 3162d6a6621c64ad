package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultAPIBase = "https://api.telegram.org"

// Client — минимальный клиент Telegram Bot API: длинный опрос getUpdates
// и отправка текстовых ответов. Больше боту ничего не нужно.
type Client struct {
	httpClient *http.Client
	token      string
	apiBase    string // подменяется в тестах
}

func NewClient(httpClient *http.Client, token string) *Client {
	return &Client{httpClient: httpClient, token: token, apiBase: defaultAPIBase}
}

// Update — входящее обновление. Интересны только текстовые сообщения.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64   `json:"message_id"`
	From      *Sender `json:"from"`
	Chat      Chat    `json:"chat"`
	Text      string  `json:"text"`
}

// Sender — отправитель сообщения; ID и есть chat id платформы,
// по которому резолвится привязанный аккаунт.
type Sender struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// GetUpdates опрашивает сервер с long-poll таймаутом timeout (секунды).
// offset — id первого ещё не подтверждённого обновления.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         timeout,
		"allowed_updates": []string{"message"},
	}

	raw, err := c.call(ctx, "getUpdates", payload)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("bot: decode updates: %w", err)
	}
	return updates, nil
}

// SendMessage отправляет текстовый ответ в чат.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := c.call(ctx, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
	return err
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bot: read %s response: %w", method, err)
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("bot: decode %s response: %w", method, err)
	}
	if !r.OK {
		return nil, fmt.Errorf("bot: %s failed: %s", method, r.Description)
	}
	return r.Result, nil
}
