package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeStreamsAudioToFile(t *testing.T) {
	audio := []byte("mp3-bytes")
	var captured speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "speech.mp3")
	c := newTestClient(t, srv.URL)

	voice, err := c.Synthesize(context.Background(), "привет", "nova", dest)
	require.NoError(t, err)
	assert.Equal(t, "nova", voice)
	assert.Equal(t, "nova", captured.Voice)
	assert.Equal(t, "привет", captured.Input)
	assert.Equal(t, c.cfg.TTSModel, captured.Model)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesizeRandomVoiceIsInjectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	// Детерминированный «случайный» источник всегда выбирает третий голос
	c.randInt = func(n int) int { return 2 }

	voice, err := c.Synthesize(context.Background(), "hi", "", filepath.Join(t.TempDir(), "s.mp3"))
	require.NoError(t, err)
	assert.Equal(t, Voices[2], voice)
}

func TestSynthesizeUnknownVoiceRejectedBeforeRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Synthesize(context.Background(), "hi", "baritone", filepath.Join(t.TempDir(), "s.mp3"))
	require.Error(t, err)
	assert.Zero(t, calls)
}
