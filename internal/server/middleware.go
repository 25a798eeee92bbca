package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"impostor-server/internal/domain"
)

// RateLimiter keeps one token bucket per connection so one noisy client
// cannot starve the coordinator for everyone else.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter // connectionID -> bucket
	mu       sync.Mutex
}

// NewRateLimiter allows perSecond messages on average with bursts up to burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether connectionID may send another message now.
func (r *RateLimiter) Allow(connectionID string) bool {
	r.mu.Lock()
	l, ok := r.limiters[connectionID]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[connectionID] = l
	}
	r.mu.Unlock()

	return l.Allow()
}

// RemoveConnection drops the bucket of a closed connection.
func (r *RateLimiter) RemoveConnection(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.limiters, connectionID)
}

func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

var validTypes = map[string]bool{
	MsgPing:                 true,
	MsgCreateRoom:           true,
	MsgJoinRoom:             true,
	MsgStartGame:            true,
	MsgSubmitClue:           true,
	MsgSubmitRoundEndVote:   true,
	MsgSubmitVote:           true,
	MsgRequestReturnToLobby: true,
	MsgLeaveRoom:            true,
}

// ValidateMessageType checks if a message type is recognized.
func ValidateMessageType(msgType string) error {
	if msgType == "" {
		return domain.ErrUnknownMessage
	}
	if !validTypes[msgType] {
		return domain.Newf(domain.CodeUnknownMessage, "Unknown message type '%s'.", msgType)
	}
	return nil
}

// requestLogger logs every HTTP request through zerolog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}
