package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// landmarkMessage is one tracker result sent by a browser client.
type landmarkMessage struct {
	VideoTime   float64              `json:"videoTime"`
	VideoWidth  int                  `json:"videoWidth"`
	VideoHeight int                  `json:"videoHeight"`
	Landmarks   [][]detector.Point3D `json:"landmarks"`
}

// toResult converts a message, dropping hands without a full landmark set.
func (m landmarkMessage) toResult() (gesture.Result, int) {
	res := gesture.Result{
		VideoTime:   m.VideoTime,
		VideoWidth:  m.VideoWidth,
		VideoHeight: m.VideoHeight,
	}
	dropped := 0
	for _, points := range m.Landmarks {
		h, err := detector.FromPoints(points)
		if err != nil {
			dropped++
			continue
		}
		res.Hands = append(res.Hands, h)
	}
	return res, dropped
}

// LandmarksHandler accepts tracker results from browser clients over
// WebSocket and publishes them to the game.
type LandmarksHandler struct {
	source  *gesture.LatestSource
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex

	// OnClients is called with the new client count after a tracker
	// connects or disconnects.
	OnClients func(n int)
}

// NewLandmarksHandler creates a new LandmarksHandler publishing into source.
func NewLandmarksHandler(source *gesture.LatestSource) *LandmarksHandler {
	return &LandmarksHandler{
		source:  source,
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LandmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.notify(n)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		n := len(h.clients)
		h.mu.Unlock()
		h.notify(n)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg landmarkMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("invalid landmark message: %v", err)
			continue
		}

		res, dropped := msg.toResult()
		if dropped > 0 {
			log.Printf("dropped %d hands with too few landmarks", dropped)
		}
		h.source.Publish(res)
	}
}

func (h *LandmarksHandler) notify(n int) {
	if h.OnClients != nil {
		h.OnClients(n)
	}
}

// Clients returns the number of connected trackers.
func (h *LandmarksHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
