package server

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/impostor"
	"impostor-server/internal/room"
	"impostor-server/internal/words"
)

// Event is anything the coordinator feeds to the engine.
type Event interface {
	event()
}

// Inbound is a decoded client message.
type Inbound struct {
	ConnID  string
	Message ClientMessage
}

// Disconnected is reported by the transport when a socket goes away.
type Disconnected struct {
	ConnID string
}

// CountdownElapsed fires when a room's start countdown runs out. Session
// identifies which start it belongs to.
type CountdownElapsed struct {
	Room    string
	Session *impostor.Session
}

// ShutdownRequested dissolves every room.
type ShutdownRequested struct{}

func (Inbound) event()           {}
func (Disconnected) event()      {}
func (CountdownElapsed) event()  {}
func (ShutdownRequested) event() {}

const (
	impostorRoleMessage = "You are the Impostor! Try to guess the word from the category and clues."
	cancelledMessage    = "Game cancelled - not enough players."
	beginFailedMessage  = "Game cancelled - could not start."
	returnedMessage     = "Returned to lobby."
	shutdownMessage     = "Server shutting down."
	shutdownReason      = "server_shutdown"
)

type EngineConfig struct {
	Rooms     *room.Manager
	Words     words.Table
	Rand      *rand.Rand
	Scheduler Scheduler
	Countdown time.Duration
	Recorder  ResultRecorder // optional

	// Post delivers events produced outside the coordinator (the countdown).
	Post func(Event) bool
}

// Engine is the room and game state transition function. Handle must only be
// called from a single goroutine.
type Engine struct {
	rooms     *room.Manager
	words     words.Table
	rng       *rand.Rand
	scheduler Scheduler
	countdown time.Duration
	recorder  ResultRecorder
	post      func(Event) bool
}

func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		rooms:     cfg.Rooms,
		words:     cfg.Words,
		rng:       cfg.Rand,
		scheduler: cfg.Scheduler,
		countdown: cfg.Countdown,
		recorder:  cfg.Recorder,
		post:      cfg.Post,
	}
	if e.words == nil {
		e.words = words.Default
	}
	if e.post == nil {
		e.post = func(Event) bool { return false }
	}
	return e
}

// Handle applies ev and returns the messages it produces.
func (e *Engine) Handle(ev Event) []Outbound {
	switch ev := ev.(type) {
	case Inbound:
		return e.handleInbound(ev.ConnID, ev.Message)
	case Disconnected:
		log.Debug().Str("conn", ev.ConnID).Msg("Connection closed")
		return e.leave(ev.ConnID)
	case CountdownElapsed:
		return e.handleCountdown(ev)
	case ShutdownRequested:
		return e.handleShutdown()
	default:
		log.Warn().Msgf("Unhandled event %T", ev)
		return nil
	}
}

// Summaries lists every room for the read-only /rooms view.
func (e *Engine) Summaries() []room.Summary {
	rooms := e.rooms.Store().List()
	out := make([]room.Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	return out
}

func (e *Engine) handleInbound(connID string, msg ClientMessage) []Outbound {
	if err := ValidateMessageType(msg.Type); err != nil {
		log.Debug().Str("conn", connID).Str("type", msg.Type).Msg("Unknown message type")
		return []Outbound{errorTo(connID, err)}
	}

	switch msg.Type {
	case MsgPing:
		return []Outbound{unicast(connID, MsgPong, struct{}{})}
	case MsgCreateRoom:
		return e.handleCreateRoom(connID, msg)
	case MsgJoinRoom:
		return e.handleJoinRoom(connID, msg)
	case MsgStartGame:
		return e.handleStartGame(connID, msg)
	case MsgSubmitClue:
		return e.handleSubmitClue(connID, msg)
	case MsgSubmitRoundEndVote:
		return e.handleSubmitRoundEndVote(connID, msg)
	case MsgSubmitVote:
		return e.handleSubmitVote(connID, msg)
	case MsgRequestReturnToLobby:
		return e.handleReturnToLobby(connID, msg)
	case MsgLeaveRoom:
		return e.leave(connID)
	}
	return nil
}

func (e *Engine) handleCountdown(ev CountdownElapsed) []Outbound {
	r, err := e.rooms.Store().Get(ev.Room)
	if err != nil {
		log.Debug().Str("room", ev.Room).Msg("Countdown elapsed for a room that no longer exists")
		return nil
	}
	s := r.Session
	if s == nil || s != ev.Session || s.Phase() != impostor.PhaseCountdown {
		log.Debug().Str("room", ev.Room).Msg("Stale countdown ignored")
		return nil
	}

	if len(r.Members) < impostor.MinPlayers {
		r.Session = nil
		log.Info().Str("room", r.Code).Msg("Game cancelled before start")
		return []Outbound{toRoom(r, MsgGameEnded, GameEndedNotification{Message: cancelledMessage})}
	}

	if _, err := s.Begin(r.Nicknames(), e.words, e.rng); err != nil {
		r.Session = nil
		log.Error().Err(err).Str("room", r.Code).Msg("Failed to begin session")
		return []Outbound{toRoom(r, MsgGameEnded, GameEndedNotification{Message: beginFailedMessage})}
	}

	out := make([]Outbound, 0, len(r.Members)+1)
	for _, p := range r.Members {
		out = append(out, unicast(p.ConnID, MsgGameRoleAssigned, roleMessage(s.Role(p.Nickname))))
	}
	out = append(out, gameState(r))

	log.Info().
		Str("room", r.Code).
		Int("players", len(r.Members)).
		Int("impostors", len(s.Impostors())).
		Str("phase", s.Phase().String()).
		Msg("Game started")
	return out
}

func (e *Engine) handleShutdown() []Outbound {
	var out []Outbound
	for _, r := range e.rooms.Store().List() {
		e.scheduler.Cancel(r.Code)
		conns := e.rooms.Dissolve(r.Code)
		if len(conns) > 0 {
			out = append(out, roomcast(conns, MsgRoomDeleted, RoomDeletedNotification{
				Message: shutdownMessage,
				Reason:  shutdownReason,
			}))
		}
	}
	return out
}

// leave is the single departure path for leave_room and disconnects.
func (e *Engine) leave(connID string) []Outbound {
	res, ok := e.rooms.Leave(connID)
	if !ok {
		return nil
	}
	code := res.Room.Code
	if res.SessionEnded || res.Dissolved {
		e.scheduler.Cancel(code)
	}

	logger := log.With().Str("room", code).Str("nickname", res.Nickname).Str("conn", connID).Logger()

	if res.Dissolved {
		msg := "Room deleted: Last user left."
		if res.Reason == room.DissolvedAdminLeft {
			msg = "Room deleted: Admin left."
		}
		logger.Info().Str("reason", string(res.Reason)).Msg("Room dissolved")
		if len(res.Remaining) == 0 {
			return nil
		}
		return []Outbound{roomcast(res.Remaining, MsgRoomDeleted, RoomDeletedNotification{
			Message: msg,
			Reason:  string(res.Reason),
		})}
	}

	logger.Info().Int("members", len(res.Room.Members)).Msg("Participant left")
	out := []Outbound{roomcast(res.Remaining, MsgUserLeft, UserLeftNotification{
		Nickname: res.Nickname,
		Members:  res.Room.Roster(),
	})}
	if res.SessionEnded {
		logger.Info().Msg("Game ended by departure")
		out = append(out, roomcast(res.Remaining, MsgGameEnded, GameEndedNotification{
			Message: "Game ended: " + res.Nickname + " left.",
		}))
	}
	return out
}

func roleMessage(a impostor.RoleAssignment) RoleAssignedMessage {
	m := RoleAssignedMessage{Role: a.Role, Category: a.Category, Word: a.Word}
	if a.Role == impostor.RoleImpostor {
		m.Word = ""
		m.Message = impostorRoleMessage
	}
	return m
}
