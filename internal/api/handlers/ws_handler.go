package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tamilsociety/tls-platform/internal/api/middleware"
	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

// The feed authenticates with the token cookie, so a browser upgrade is only
// accepted from the same origins CORS allows. Clients that send no Origin
// are not browsers and need a bearer token anyway.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.AllowedOrigin(origin)
	},
}

type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// StreamRecruitment upgrades to a websocket and streams submission, review
// and deletion events until the client goes away.
func (h *FeedHandler) StreamRecruitment(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn)
}
