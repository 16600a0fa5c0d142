package rawbt

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"momir/internal/momir"
)

// DefaultURL is the WebSocket endpoint the RawBT app listens on
const DefaultURL = "ws://localhost:40213/"

// SocketConfig configures a SocketPrinter
type SocketConfig struct {
	URL           string
	DialTimeout   time.Duration
	JobTimeout    time.Duration
	GraphicFilter int
	Dialer        *websocket.Dialer
	Logger        *slog.Logger
}

// SocketPrinter speaks RawBT's JSON-over-WebSocket job protocol.
// Each Print opens one connection, sends one job and closes the connection
// after exactly one terminal outcome. There is no reconnect or retry.
type SocketPrinter struct {
	url           string
	dialTimeout   time.Duration
	jobTimeout    time.Duration
	graphicFilter int
	dialer        *websocket.Dialer
	logger        *slog.Logger
}

// NewSocketPrinter creates a printer with defaults for unset fields
func NewSocketPrinter(cfg SocketConfig) *SocketPrinter {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.GraphicFilter == 0 {
		cfg.GraphicFilter = GraphicFilterAtkinson
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &SocketPrinter{
		url:           cfg.URL,
		dialTimeout:   cfg.DialTimeout,
		jobTimeout:    cfg.JobTimeout,
		graphicFilter: cfg.GraphicFilter,
		dialer:        cfg.Dialer,
		logger:        cfg.Logger,
	}
}

// Print sends img to the printer and blocks until success, error or a broken connection
func (p *SocketPrinter) Print(ctx context.Context, img momir.CardImage, progress func(float64)) (momir.Handoff, error) {
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}

	s := &session{logger: p.logger.With("url", p.url, "card_id", img.ID)}
	if err := s.connect(ctx, p.dialer, p.url, p.dialTimeout); err != nil {
		return momir.Handoff{}, err
	}

	stop := context.AfterFunc(ctx, func() { s.close() })
	defer stop()

	return momir.Handoff{}, s.run(ctx, NewImageJob(img, p.graphicFilter), progress)
}

type sessionState int

const (
	stateConnecting sessionState = iota
	stateAwaitingResult
	stateClosed
)

func (s sessionState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateAwaitingResult:
		return "awaiting-result"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// session is one job's connection: Connecting -> AwaitingResult -> Closed.
// Closed is only entered through close, so the socket is closed once.
type session struct {
	mu     sync.Mutex
	state  sessionState
	conn   *websocket.Conn
	logger *slog.Logger
}

// connect handles the Connecting state
func (s *session) connect(ctx context.Context, dialer *websocket.Dialer, url string, timeout time.Duration) error {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(dialCtx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		s.mu.Lock()
		s.state = stateClosed
		s.mu.Unlock()
		s.logger.Warn("printer connection failed", "error", err)
		return &ConnectError{URL: url, Err: err}
	}

	s.mu.Lock()
	s.conn = conn
	s.state = stateAwaitingResult
	s.mu.Unlock()
	s.logger.Debug("printer connection open")
	return nil
}

// run handles the AwaitingResult state until a terminal outcome
func (s *session) run(ctx context.Context, job Job, progress func(float64)) error {
	if err := s.conn.WriteJSON(job); err != nil {
		s.close()
		return &TransportError{Err: err}
	}

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.close()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return &TransportError{Err: ctxErr}
			}
			return &TransportError{Err: err}
		}

		done, err := s.handle(data, progress)
		if done {
			return err
		}
	}
}

// handle processes one inbound message. It reports whether the message was terminal.
func (s *session) handle(data []byte, progress func(float64)) (bool, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		s.close()
		return true, &ProtocolError{Unknown: true, Raw: string(data)}
	}

	switch resp.ResponseType {
	case ResponseProgress:
		if progress != nil {
			progress(resp.Progress)
		}
		return false, nil
	case ResponseSuccess:
		s.close()
		return true, nil
	case ResponseError:
		s.close()
		return true, &ProtocolError{Message: resp.ErrorMessage, Raw: string(data)}
	default:
		s.close()
		return true, &ProtocolError{Unknown: true, Raw: string(data)}
	}
}

// close moves the session to Closed. Only the first call touches the socket.
func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	if prev == stateClosed {
		return
	}
	s.state = stateClosed

	if s.conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = s.conn.Close()
	}
	s.logger.Debug("printer connection closed", "from", prev)
}
