package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImagePath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	abs := filepath.Join(t.TempDir(), "deep", "pic.png")

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare name", "foo", filepath.Join(cwd, "foo.png")},
		{"foreign extension forced", "foo.jpg", filepath.Join(cwd, "foo.png")},
		{"relative with dirs", filepath.Join("out", "foo"), filepath.Join(cwd, "out", "foo.png")},
		{"absolute png unchanged", abs, abs},
		{"empty falls back to default", "", filepath.Join(cwd, "image.png")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeImagePath(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Идемпотентность: повторная нормализация ничего не меняет
			again, err := NormalizeImagePath(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestGenerateImageDownloadsResult(t *testing.T) {
	payload := []byte("png-bytes")
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/generations":
			fmt.Fprintf(w, `{"data":[{"url":%q}]}`, srv.URL+"/files/img-1")
		case "/files/img-1":
			_, _ = w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "result")
	c := newTestClient(t, srv.URL)

	path, err := c.GenerateImage(context.Background(), "a lighthouse", dest)
	require.NoError(t, err)
	assert.Equal(t, dest+".png", path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestGenerateImageMissingURLIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateImage(context.Background(), "x", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err, "2xx без URL — ошибка, а не пустой успех")
}
