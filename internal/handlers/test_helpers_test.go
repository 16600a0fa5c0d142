package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"momir/internal/config"
	"momir/internal/momir"
	"momir/internal/rawbt"
	"momir/internal/scryfall"
	"momir/internal/store"
)

// jpegBytes starts with a JPEG signature so content sniffing agrees with the header
var jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00fake-card")

// fakeScryfall serves a card image for every mana value except 13, which has no cards
type fakeScryfall struct {
	server   *httptest.Server
	requests atomic.Int32
	started  chan struct{}

	mu    sync.Mutex
	block chan struct{}
}

// hold makes every following request wait until the returned channel is closed
func (f *fakeScryfall) hold() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = make(chan struct{})
	return f.block
}

func newFakeScryfall(t *testing.T) *fakeScryfall {
	t.Helper()
	f := &fakeScryfall{started: make(chan struct{}, 10)}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		select {
		case f.started <- struct{}{}:
		default:
		}
		f.mu.Lock()
		block := f.block
		f.mu.Unlock()
		if block != nil {
			<-block
		}

		if strings.Contains(r.URL.Query().Get("q"), "cmc:13") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"object":"error","details":"No cards found"}`)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpegBytes)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv bundles a handler wired to fakes
type testEnv struct {
	handler  *Handler
	router   *chi.Mux
	prefs    *store.MemoryStore
	scryfall *fakeScryfall
}

// newTestEnv creates a handler whose printer hands jobs to the rawbt: scheme
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeScryfall(t)
	cfg := config.DefaultConfig()
	cfg.Printer.Strategy = config.StrategyScheme

	client := scryfall.NewClient(scryfall.Config{
		RandomURL:       fake.server.URL,
		RequestInterval: time.Millisecond,
		Logger:          testLogger(),
	})
	prefs := store.NewMemoryStore()
	app := momir.NewApp(client, rawbt.SchemePrinter{}, prefs, momir.Options{Logger: testLogger()})

	h := New(app, cfg, testLogger())
	router := SetupRouter(h, cfg, &RouterOptions{
		DisableRateLimiting:  true,
		DisableRequestLogger: true,
		StaticFS: fstest.MapFS{
			"momir.css": {Data: []byte("body { margin: 0; }")},
		},
	})
	return &testEnv{handler: h, router: router, prefs: prefs, scryfall: fake}
}

// do sends a request through the router
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// selectMode sets the mode directly on the app
func (e *testEnv) selectMode(t *testing.T, mode momir.PrintMode) {
	t.Helper()
	if err := e.handler.App().SetMode(t.Context(), mode); err != nil {
		t.Fatalf("SetMode(%s): %v", mode, err)
	}
}
