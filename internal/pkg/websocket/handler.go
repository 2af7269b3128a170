package websocket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades view connections and attaches them to the hub
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty origins list accepts any origin.
func NewHandler(hub *Hub, origins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	_, wildcard := allowed["*"]

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 || wildcard {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// parseKeys turns "a,b" into a key set; empty input means every key
func parseKeys(raw string) map[string]struct{} {
	var keys map[string]struct{}
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if keys == nil {
			keys = make(map[string]struct{})
		}
		keys[k] = struct{}{}
	}
	return keys
}

// HandleConnection godoc
// @Summary Subscribe a view to document changes
// @Description Upgrades to a WebSocket that receives {"type":"storage","key":...} frames whenever a watched document changes
// @Tags views
// @Param keys query string false "Comma separated document keys, empty for all"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		keys:   parseKeys(c.Query("keys")),
		logger: h.logger,
	}
	if !h.hub.enqueueRegister(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
