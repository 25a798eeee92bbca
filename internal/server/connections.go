package server

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendQueueSize     = 64
	writeTimeout      = 10 * time.Second
	heartbeatInterval = 30 * time.Second
)

// Socket is the part of *websocket.Conn the write side needs.
type Socket interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Ping(ctx context.Context) error
	Close(code websocket.StatusCode, reason string) error
}

// Transport delivers encoded messages to connections. Send never blocks.
type Transport interface {
	Send(connID string, data []byte) bool
}

type client struct {
	id     string
	socket Socket
	send   chan []byte

	closeOnce sync.Once
	quit      chan struct{} // drain the queue, then close
	done      chan struct{} // write pump exited
}

func (c *client) shutdown() {
	c.closeOnce.Do(func() { close(c.quit) })
}

// closeSocket starts the close handshake and returns without waiting for the
// peer to answer it. The read loop sees the close when it completes.
func (c *client) closeSocket(code websocket.StatusCode, reason string) {
	go c.socket.Close(code, reason)
}

type ConnectionManager struct {
	clients   map[string]*client // connectionID → client
	mu        sync.RWMutex
	heartbeat time.Duration
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients:   make(map[string]*client),
		heartbeat: heartbeatInterval,
	}
}

// AddConnection registers socket under id and starts its write pump.
func (cm *ConnectionManager) AddConnection(ctx context.Context, id string, socket Socket) {
	c := &client{
		id:     id,
		socket: socket,
		send:   make(chan []byte, sendQueueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	cm.mu.Lock()
	cm.clients[id] = c
	cm.mu.Unlock()

	go cm.writePump(ctx, c)
}

// RemoveConnection stops the write pump for id.
func (cm *ConnectionManager) RemoveConnection(id string) {
	cm.mu.Lock()
	c, ok := cm.clients[id]
	delete(cm.clients, id)
	cm.mu.Unlock()

	if ok {
		c.shutdown()
	}
}

// Send queues data for id. A connection whose queue is full is closed; the
// read loop then reports it as a disconnect.
func (cm *ConnectionManager) Send(id string, data []byte) bool {
	cm.mu.RLock()
	c, ok := cm.clients[id]
	cm.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case <-c.quit:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		log.Warn().Str("conn", id).Msg("Send queue full, closing slow connection")
		c.shutdown()
		return false
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// CloseAll flushes every connection and starts its close handshake. It waits
// for the queued frames to be written, or until ctx expires, but not for the
// peers to acknowledge the close.
func (cm *ConnectionManager) CloseAll(ctx context.Context) {
	cm.mu.RLock()
	clients := make([]*client, 0, len(cm.clients))
	for _, c := range cm.clients {
		clients = append(clients, c)
	}
	cm.mu.RUnlock()

	for _, c := range clients {
		c.shutdown()
	}
	for _, c := range clients {
		select {
		case <-c.done:
		case <-ctx.Done():
			return
		}
	}
}

func (cm *ConnectionManager) writePump(ctx context.Context, c *client) {
	defer close(c.done)

	ticker := time.NewTicker(cm.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			if err := write(ctx, c.socket, data); err != nil {
				log.Warn().Err(err).Str("conn", c.id).Msg("Write failed")
				c.closeSocket(websocket.StatusInternalError, "write failed")
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.socket.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Warn().Err(err).Str("conn", c.id).Msg("Heartbeat failed")
				c.closeSocket(websocket.StatusGoingAway, "heartbeat failed")
				return
			}

		case <-c.quit:
			for {
				select {
				case data := <-c.send:
					if err := write(ctx, c.socket, data); err != nil {
						c.closeSocket(websocket.StatusGoingAway, "closing")
						return
					}
				default:
					c.closeSocket(websocket.StatusGoingAway, "closing")
					return
				}
			}

		case <-ctx.Done():
			c.closeSocket(websocket.StatusGoingAway, "server closing")
			return
		}
	}
}

func write(ctx context.Context, socket Socket, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return socket.Write(ctx, websocket.MessageText, data)
}
