package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxradar/backend/pkg/config"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc, keys ...string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.GeminiConfig{APIKeys: keys, Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func successBody(text string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	})
	return body
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.GeminiConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestGenerate_ReturnsFirstCandidateText(t *testing.T) {
	var gotKey, gotPath string
	var gotRequest generateRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotRequest)
		w.Write(successBody("plain language alert"))
	}, "key-1")

	text, err := client.Generate(context.Background(), "explain this interaction")

	require.NoError(t, err)
	assert.Equal(t, "plain language alert", text)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	require.Len(t, gotRequest.Contents, 1)
	require.Len(t, gotRequest.Contents[0].Parts, 1)
	assert.Equal(t, "explain this interaction", gotRequest.Contents[0].Parts[0].Text)
}

func TestGenerate_RotatesToNextKeyOnFailure(t *testing.T) {
	var keysSeen []string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-goog-api-key")
		keysSeen = append(keysSeen, key)
		if key != "key-3" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(successBody("eventually"))
	}, "key-1", "key-2", "key-3")

	text, err := client.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "eventually", text)
	assert.Equal(t, []string{"key-1", "key-2", "key-3"}, keysSeen)
}

func TestGenerate_StopsAtFirstSuccess(t *testing.T) {
	calls := 0

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(successBody("first try"))
	}, "key-1", "key-2")

	_, err := client.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerate_AllKeysExhausted(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "key-1", "key-2")

	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeUnavailable, appErr.Type)
}

// Alert synthesis fans out one Generate call per ingredient pair, so the
// client and its metrics path must be safe for concurrent use. Run with the
// race detector enabled.
func TestGenerate_ConcurrentCalls(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(successBody("ok"))
	}, "key-1")

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot], errs[slot] = client.Generate(context.Background(), "prompt")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "ok", results[i])
	}
}

func TestGenerate_MissingCandidateTextFailsOver(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") == "key-1" {
			w.Write([]byte(`{"candidates": []}`))
			return
		}
		w.Write(successBody("from second key"))
	}, "key-1", "key-2")

	text, err := client.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "from second key", text)
}
