package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/config"
	ws "github.com/hiresift/hiresift-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live grading progress to assessment clients.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ProgressStream godoc
// WS /ws/v1/applicants/:id/progress
// Upgrades to WebSocket and forwards grading progress events published
// on the applicant's Redis channel.
func (h *WSHandler) ProgressStream(c *gin.Context) {
	applicantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid applicant ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("applicant_id", applicantID.String()).Logger()
	wsLog.Info().Msg("Progress stream connected")

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.AssessmentProgressChannel(applicantID.String()))
	defer sub.Close()

	// Reader goroutine: consume pings and detect disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Progress stream closed by client")
			return
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Progress stream write failed")
				return
			}
		}
	}
}
