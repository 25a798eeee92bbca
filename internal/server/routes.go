package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/coder/websocket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"impostor-server/internal/domain"
	"impostor-server/internal/room"
)

const maxMessageSize = 8 << 10

var errHistoryDisabled = errors.New("history is disabled")

func (s *Server) RegisterRoutes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.healthHandler)
	r.GET("/rooms", s.roomsHandler)
	r.GET("/history", s.historyHandler)
	r.GET("/ws", s.websocketHandler)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}
	if len(s.cfg.ClientOrigins) == 0 || slices.Contains(s.cfg.ClientOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.ClientOrigins
	}
	return cfg
}

// originPatterns turns configured origins into the host patterns the
// websocket handshake matches against.
func originPatterns(origins []string) []string {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return []string{"*"}
	}
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, o)
	}
	return patterns
}

func (s *Server) healthHandler(c *gin.Context) {
	resp := HealthResponse{
		Status:      "ok",
		Rooms:       s.rooms.Store().Len(),
		Connections: s.connections.Count(),
		Archive:     map[string]string{"status": "disabled"},
	}
	if s.archive != nil {
		resp.Archive = s.archive.Health(c.Request.Context())
		if resp.Archive["status"] != "up" {
			resp.Status = "degraded"
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) roomsHandler(c *gin.Context) {
	var summaries []room.Summary
	err := s.coordinator.Do(c.Request.Context(), func() {
		summaries = s.engine.Summaries()
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RoomsResponse{Rooms: summaries})
}

func (s *Server) historyHandler(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errHistoryDisabled.Error()})
		return
	}

	limit := defaultHistoryLen
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > maxHistoryLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	results, err := s.archive.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) websocketHandler(c *gin.Context) {
	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to open websocket")
		return
	}
	socket.SetReadLimit(maxMessageSize)

	ctx := c.Request.Context()
	connectionID := uuid.New().String()
	log.Debug().Str("conn", connectionID).Msg("New connection")

	s.connections.AddConnection(ctx, connectionID, socket)
	defer func() {
		s.connections.RemoveConnection(connectionID)
		s.limiter.RemoveConnection(connectionID)
		s.coordinator.Post(Disconnected{ConnID: connectionID})
	}()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Debug().Err(err).Str("conn", connectionID).Msg("Connection read error")
			}
			return
		}

		if msgType != websocket.MessageText {
			log.Debug().Str("conn", connectionID).Msg("Non-text input ignored")
			continue
		}

		if !s.limiter.Allow(connectionID) {
			s.sendDirect(errorTo(connectionID, domain.ErrRateLimited))
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("conn", connectionID).Msg("Invalid JSON")
			s.sendDirect(errorTo(connectionID, domain.ErrInvalidPayload))
			continue
		}

		log.Debug().Str("conn", connectionID).Str("type", msg.Type).Msg("Message received")
		if !s.coordinator.Post(Inbound{ConnID: connectionID, Message: msg}) {
			socket.Close(websocket.StatusGoingAway, "server closing")
			return
		}
	}
}

// sendDirect delivers a transport-level reply without a coordinator round trip.
func (s *Server) sendDirect(o Outbound) {
	data, err := json.Marshal(o.Message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message")
		return
	}
	for _, id := range o.To {
		s.connections.Send(id, data)
	}
}
