package scryfall

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestClient(url string) *Client {
	return NewClient(Config{
		RandomURL:       url,
		RequestInterval: time.Millisecond,
	})
}

func TestClient_FetchImage(t *testing.T) {
	t.Run("encodes image body as data uri", func(t *testing.T) {
		var gotQuery, gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(fakeJPEG)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		img, err := client.RandomCard(context.Background(), 4)
		require.NoError(t, err)

		assert.NotEmpty(t, img.ID)
		assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(fakeJPEG), img.DataURI)
		assert.True(t, strings.HasSuffix(gotQuery, "cmc:4"))
		assert.Equal(t, "momir/1.0", gotAgent)
	})

	t.Run("sniffs content type when missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			w.Write(fakeJPEG)
		}))
		defer server.Close()

		img, err := newTestClient(server.URL).FetchImage(context.Background(), server.URL)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(img.DataURI, "data:image/jpeg;base64,"))
	})

	t.Run("json error includes details and warnings", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"object":"error","code":"not_found","status":404,"details":"No cards found","warnings":["bad term"]}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).RandomCard(context.Background(), 99)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "No cards found bad term", apiErr.Message)
		assert.Equal(t, "HTTP 404: No cards found bad term", err.Error())
	})

	t.Run("plain text error is returned raw", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, "down for maintenance")
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).RandomCard(context.Background(), 1)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "down for maintenance", apiErr.Message)
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url).RandomCard(context.Background(), 1)
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Contains(t, netErr.URL, url)
	})

	t.Run("single attempt without retry", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).RandomCard(context.Background(), 1)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context fails fast", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient("http://127.0.0.1:1").RandomCard(ctx, 1)
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func errorResponse(contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: http.StatusBadRequest,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"details with warnings", "application/json", `{"details":"bad request","warnings":["x"]}`, "bad request x"},
		{"details only", "application/json", `{"details":"bad request"}`, "bad request"},
		{"several warnings", "application/json", `{"details":"bad request","warnings":["x","y"]}`, "bad request x,y"},
		{"null warnings", "application/json", `{"details":"bad request","warnings":null}`, "bad request"},
		{"empty warnings", "application/json", `{"details":"bad request","warnings":[]}`, "bad request"},
		{"string warning", "application/json", `{"details":"bad request","warnings":"x"}`, "bad request x"},
		{"non json body", "text/html", "<h1>oops</h1>", "<h1>oops</h1>"},
		{"no content type", "", "oops", "oops"},
		{"broken json", "application/json", "{not json", "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(errorResponse(tt.contentType, tt.body)))
		})
	}
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,QUJD", DataURI("image/png", []byte("ABC")))
	assert.Equal(t, "data:image/png;base64,QUJD", DataURI("image/png; charset=binary", []byte("ABC")))
	assert.True(t, strings.HasPrefix(DataURI("", fakeJPEG), "data:image/jpeg;base64,"))
}

func TestDecodeDataURI(t *testing.T) {
	mediaType, data, err := DecodeDataURI(DataURI("image/png", []byte("ABC")))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte("ABC"), data)

	for _, bad := range []string{"https://cards.scryfall.io/x.jpg", "data:image/png,QUJD", "data:image/png;base64,!!!"} {
		_, _, err := DecodeDataURI(bad)
		assert.Error(t, err, bad)
	}
}
