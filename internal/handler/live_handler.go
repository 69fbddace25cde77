package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/response"
	ws "github.com/stemsi/absensi-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits every origin.
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// LiveHandler streams attendance events to WebSocket clients.
type LiveHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "live_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AttendanceStream godoc
// WS /api/ws/attendance
// Upgrades to WebSocket and forwards every published attendance event.
func (h *LiveHandler) AttendanceStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("request_id", response.RequestID(c)).Logger()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.RedisKey.EventsChannel)
	defer sub.Close()

	// Wait for the subscription confirmation so "ready" means "subscribed".
	if _, err := sub.Receive(ctx); err != nil {
		wsLog.Error().Err(err).Msg("Failed to subscribe to attendance events")
		_ = ws.WriteError(conn, "live feed unavailable")
		return
	}

	out := make(chan interface{}, 16)
	send := func(v interface{}) {
		select {
		case out <- v:
		case <-ctx.Done():
		}
	}

	// gorilla connections allow a single concurrent writer.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-out:
				if err := ws.WriteTyped(conn, msg); err != nil {
					wsLog.Debug().Err(err).Msg("Write failed, closing stream")
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	send(ws.ReadyResponse{Event: ws.EventReady})

	go func() {
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event model.AttendanceEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					wsLog.Warn().Err(err).Msg("Dropping malformed attendance event")
					continue
				}
				send(ws.AttendanceResponse{Event: ws.EventAttendance, Data: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	wsLog.Info().Msg("Live feed client connected")

	for {
		var req ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch req.Action {
		case ws.ActionPing:
			send(ws.PongResponse{Event: ws.EventPong})
		default:
			send(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(req.Action)})
		}
	}

	cancel()
	<-writerDone
}
