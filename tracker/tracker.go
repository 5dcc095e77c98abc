// Package tracker receives per-frame hand landmark sets from the external
// pose tracker over a WebSocket. The tracker (a MediaPipe sidecar or
// browser) connects and pushes one JSON message per processed camera frame;
// each message carries zero, one, or two hands.
package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/max-tan123/gestedj/debug"
	"github.com/max-tan123/gestedj/gesture"
)

// FrameMessage is the wire format pushed by the tracker once per frame.
type FrameMessage struct {
	Type   string        `json:"type"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Hands  []handPayload `json:"hands"`
}

type handPayload struct {
	Handedness gesture.Handedness `json:"handedness"`
	Landmarks  []gesture.Point    `json:"landmarks"`
}

// Defaults for trackers that omit frame dimensions. The pinch threshold is
// pixel-based, so these define its effective scale.
const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Server accepts one tracker connection at a time and converts its messages
// into gesture frames on Frames. A message with no hands is delivered as an
// empty slice so the engine can run detection-loss handling.
type Server struct {
	addr   string
	frames chan []gesture.Frame

	httpServer *http.Server
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1024,
	// The tracker sidecar runs locally; no cross-origin checks.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer creates a tracker ingest server listening on addr.
func NewServer(addr string) *Server {
	return &Server{
		addr:   addr,
		frames: make(chan []gesture.Frame, 8),
	}
}

// Frames returns the channel of decoded landmark frames, one element per
// camera frame.
func (s *Server) Frames() <-chan []gesture.Frame {
	return s.frames
}

// Run serves the ingest endpoint until the context is cancelled. Blocking —
// run in a goroutine.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/landmarks", s.handleTracker)

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
		return nil
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// handleTracker upgrades the connection and pumps frames until the tracker
// disconnects. Malformed messages are dropped with a log line; they never
// take the pipeline down.
func (s *Server) handleTracker(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Log("tracker", "ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	debug.Log("tracker", "tracker connected from %s", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			debug.Log("tracker", "tracker disconnected: %v", err)
			return
		}

		frames, err := DecodeFrames(data)
		if err != nil {
			debug.Log("tracker", "dropped malformed frame: %v", err)
			continue
		}

		select {
		case s.frames <- frames:
		default:
			// Engine is behind; drop the oldest pending frame so control
			// latency stays bounded.
			select {
			case <-s.frames:
			default:
			}
			s.frames <- frames
		}
	}
}

// DecodeFrames parses one tracker message into gesture frames. Hands with a
// wrong landmark count or unknown handedness are skipped.
func DecodeFrames(data []byte) ([]gesture.Frame, error) {
	var msg FrameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	width, height := msg.Width, msg.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	frames := make([]gesture.Frame, 0, len(msg.Hands))
	for _, h := range msg.Hands {
		if len(h.Landmarks) != gesture.NumLandmarks {
			debug.Log("tracker", "hand with %d landmarks skipped", len(h.Landmarks))
			continue
		}
		if h.Handedness != gesture.Left && h.Handedness != gesture.Right {
			debug.Log("tracker", "unknown handedness %q skipped", h.Handedness)
			continue
		}
		f := gesture.Frame{
			Handedness: h.Handedness,
			Width:      width,
			Height:     height,
		}
		copy(f.Points[:], h.Landmarks)
		frames = append(frames, f)
	}
	return frames, nil
}
