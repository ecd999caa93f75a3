package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// MaxMessageLen is the Telegram per-message character limit.
const MaxMessageLen = 4096

// Client sends report messages to a single chat via the Telegram bot API.
// A client without a token is disabled and drops messages silently.
type Client struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, chatID string) *Client {
	return &Client{
		token:      token,
		chatID:     chatID,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the client is configured to send.
func (c *Client) Enabled() bool {
	return c.token != "" && c.chatID != ""
}

// SendMessage delivers text to the configured chat, splitting it into
// chunks under the Telegram length limit.
func (c *Client) SendMessage(text string) error {
	if !c.Enabled() {
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	for _, part := range chunkText(text, MaxMessageLen) {
		payload, err := json.Marshal(map[string]string{
			"chat_id": c.chatID,
			"text":    part,
		})
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram API error: %d", resp.StatusCode)
		}
	}
	return nil
}

// chunkText splits on rune boundaries: a cut inside a multi-byte rune would
// corrupt both adjacent chunks and Telegram rejects invalid UTF-8. Reports
// are full of emoji, so this matters at every boundary.
func chunkText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}
	var parts []string
	for len(text) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLen // not UTF-8 at all; split blindly
		}
		parts = append(parts, text[:cut])
		text = text[cut:]
	}
	if len(text) > 0 {
		parts = append(parts, text)
	}
	return parts
}
