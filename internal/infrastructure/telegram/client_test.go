package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	assert.Equal(t, []string{"short"}, chunkText("short", 10))

	parts := chunkText(strings.Repeat("a", 25), 10)
	require.Len(t, parts, 3)
	assert.Equal(t, 10, len(parts[0]))
	assert.Equal(t, 10, len(parts[1]))
	assert.Equal(t, 5, len(parts[2]))
	assert.Equal(t, strings.Repeat("a", 25), strings.Join(parts, ""))
}

func TestChunkText_NeverSplitsARune(t *testing.T) {
	// An emoji straddling the limit: byte 4096 lands inside "⛔".
	text := strings.Repeat("a", MaxMessageLen-1) + "⛔ STOP BTCUSDT [1d]"

	parts := chunkText(text, MaxMessageLen)
	require.Len(t, parts, 2)
	for i, part := range parts {
		assert.True(t, utf8.ValidString(part), "chunk %d is not valid UTF-8", i+1)
		assert.LessOrEqual(t, len(part), MaxMessageLen)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
	assert.True(t, strings.HasPrefix(parts[1], "⛔"))
}

func TestChunkText_ConsecutiveEmoji(t *testing.T) {
	text := strings.Repeat("🎯", 10) // 4 bytes each

	parts := chunkText(text, 10)
	for i, part := range parts {
		assert.True(t, utf8.ValidString(part), "chunk %d is not valid UTF-8", i+1)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSendMessage_DisabledClientDropsSilently(t *testing.T) {
	c := NewClient("", "")
	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendMessage("hello"))
}

func TestSendMessage_SplitsLongReports(t *testing.T) {
	var payloads []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken/sendMessage", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		payloads = append(payloads, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient("token", "chat42")
	c.baseURL = server.URL

	require.NoError(t, c.SendMessage(strings.Repeat("x", MaxMessageLen+1)))

	require.Len(t, payloads, 2)
	assert.Equal(t, "chat42", payloads[0]["chat_id"])
	assert.Len(t, payloads[0]["text"], MaxMessageLen)
	assert.Len(t, payloads[1]["text"], 1)
}

func TestSendMessage_APIErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("token", "chat42")
	c.baseURL = server.URL

	err := c.SendMessage("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
