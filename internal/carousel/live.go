package carousel

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/blogrender/internal/blog"
	"github.com/ziadkadry99/blogrender/internal/posts"
)

// DefaultWriteWait bounds each websocket write. A client that stops reading
// is disconnected once a write exceeds it.
const DefaultWriteWait = 10 * time.Second

// Source supplies the post pool slides are drawn from.
type Source interface {
	LoadIndex(ctx context.Context) ([]posts.Post, error)
}

// Live serves one carousel per websocket connection.
type Live struct {
	src       Source
	size      int
	interval  time.Duration
	writeWait time.Duration
	logger    *zap.Logger

	// CheckOrigin decides whether an upgrade request's Origin is allowed.
	// Nil accepts only same-host origins.
	CheckOrigin func(r *http.Request) bool
}

// NewLive creates the live carousel handler. size is the slide count and
// interval the auto-advance period.
func NewLive(src Source, size int, interval time.Duration, logger *zap.Logger) *Live {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Live{
		src:       src,
		size:      size,
		interval:  interval,
		writeWait: DefaultWriteWait,
		logger:    logger.Named("carousel"),
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (l *Live) RegisterRoutes(r chi.Router) {
	r.Get("/ws/carousel", l.handleWebSocket)
}

// clientEvent is the incoming WebSocket message format.
type clientEvent struct {
	Type  string `json:"type"` // mouseenter, mouseleave, goto, prev, next, click
	Index int    `json:"index"`
	// Origin is "slide", "read-more" or "control" for click events.
	Origin string `json:"origin,omitempty"`
}

type slideInfo struct {
	Index    int    `json:"index"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
	URL      string `json:"url"`
}

// serverEvent is the outgoing WebSocket message format.
type serverEvent struct {
	Type      string      `json:"type"` // init, slide, state, navigate, error
	SessionID string      `json:"session_id"`
	Index     int         `json:"index"`
	State     string      `json:"state,omitempty"`
	URL       string      `json:"url,omitempty"`
	Slides    []slideInfo `json:"slides,omitempty"`
	Content   string      `json:"content,omitempty"`
}

// session pairs a connection with its carousel. Writes are serialized
// because the timer goroutine and the read loop both send.
type session struct {
	id        string
	conn      *websocket.Conn
	writeWait time.Duration
	logger    *zap.Logger

	writeMu sync.Mutex
	closed  bool
}

// send writes one event. A failed write closes the connection, which ends
// the read loop and drops every later send.
func (s *session) send(ev serverEvent) {
	ev.SessionID = s.id
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
	if err := s.conn.WriteJSON(ev); err != nil {
		s.logger.Debug("websocket write failed, closing", zap.Error(err))
		s.closed = true
		s.conn.Close()
	}
}

func (l *Live) slides(r *http.Request) ([]posts.Post, error) {
	all, err := l.src.LoadIndex(r.Context())
	if err != nil {
		return nil, err
	}
	if q := r.URL.Query().Get("slugs"); q != "" {
		var picked []posts.Post
		for _, slug := range strings.Split(q, ",") {
			if p, ok := posts.Find(all, strings.TrimSpace(slug)); ok {
				picked = append(picked, p)
			}
		}
		return picked, nil
	}
	return blog.Sample(all, l.size, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))), nil
}

func (l *Live) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: l.CheckOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	s := &session{id: uuid.NewString(), conn: conn, writeWait: l.writeWait}
	s.logger = l.logger.With(zap.String("session", s.id))

	slides, err := l.slides(r)
	if err != nil {
		s.send(serverEvent{Type: "error", Content: "loading posts: " + err.Error()})
		return
	}

	c := New(slides, l.interval)
	c.OnChange(func(i int) {
		s.send(serverEvent{Type: "slide", Index: i})
	})
	defer c.Stop()

	info := make([]slideInfo, len(slides))
	for i, p := range slides {
		info[i] = slideInfo{Index: i, Slug: p.Slug, Title: p.Title, Category: p.Category, Image: p.Image, URL: p.URL()}
	}
	s.send(serverEvent{Type: "init", Index: c.Current(), Slides: info})
	c.Start()
	s.logger.Debug("session started", zap.Int("slides", len(slides)))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var ev clientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.send(serverEvent{Type: "error", Content: "invalid message format"})
			continue
		}

		switch ev.Type {
		case "mouseenter":
			c.MouseEnter()
			s.send(serverEvent{Type: "state", Index: c.Current(), State: c.State().String()})
		case "mouseleave":
			c.MouseLeave()
			s.send(serverEvent{Type: "state", Index: c.Current(), State: c.State().String()})
		case "goto":
			c.GoTo(ev.Index)
		case "prev":
			c.Prev()
		case "next":
			c.Next()
		case "click":
			url, navigate := c.Click(ev.Index, parseOrigin(ev.Origin))
			if navigate {
				s.send(serverEvent{Type: "navigate", Index: ev.Index, URL: url})
			}
		default:
			s.send(serverEvent{Type: "error", Content: "unknown message type: " + ev.Type})
		}
	}
}

func parseOrigin(s string) Origin {
	switch s {
	case "read-more":
		return OriginReadMore
	case "control":
		return OriginControl
	default:
		return OriginSlide
	}
}
