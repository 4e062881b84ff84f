package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"camperrent/internal/pkg/response"
)

type Handler struct {
	hub     *AlertHub
	loggerf func(format string, args ...interface{})

	upgrader websocket.Upgrader
}

func NewHandler(hub *AlertHub, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{
		hub:     hub,
		loggerf: loggerf,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin is enforced by the CORS layer and the JWT in front of
			// this route
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/alerts/ws", h.Stream)
}

// Stream upgrades an operator session to a websocket and keeps it
// registered until the peer goes away. The read loop only consumes control
// frames; alerts flow one way.
func (h *Handler) Stream(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authenticated user")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.loggerf("level=error msg=websocket upgrade failed user_id=%s err=%v", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	h.loggerf("level=info msg=operator alert stream opened user_id=%s online=%d", userID, h.hub.OnlineCount())

	defer func() {
		h.hub.Unregister(userID)
		h.loggerf("level=info msg=operator alert stream closed user_id=%s", userID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
