package server

import (
	"errors"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/domain"
	"impostor-server/internal/room"
)

// Outbound is a message addressed to connections resolved at the moment the
// event was handled, so a dissolved room can still notify its last members.
type Outbound struct {
	To      []string
	Message ServerMessage
}

func unicast(connID, msgType string, payload any) Outbound {
	return Outbound{To: []string{connID}, Message: ServerMessage{Type: msgType, Payload: payload}}
}

func roomcast(conns []string, msgType string, payload any) Outbound {
	return Outbound{To: conns, Message: ServerMessage{Type: msgType, Payload: payload}}
}

// toRoom addresses every connection currently in r.
func toRoom(r *room.Room, msgType string, payload any) Outbound {
	return roomcast(r.ConnIDs(), msgType, payload)
}

// errorTo reports a failed action back to the connection that sent it.
// Anything without a registered code is reported as INTERNAL and logged.
func errorTo(connID string, err error) Outbound {
	kind := domain.KindOf(err)
	var de *domain.Error
	if kind == domain.KindInternal || !errors.As(err, &de) {
		log.Error().Err(err).Str("conn", connID).Msg("Unexpected error handling message")
		return unicast(connID, MsgError, ErrorMessage{
			Message: "Internal error.",
			Code:    domain.CodeInternal,
			Kind:    string(domain.KindInternal),
		})
	}
	return unicast(connID, MsgError, ErrorMessage{
		Message: de.Message,
		Code:    domain.CodeOf(err),
		Kind:    string(kind),
	})
}

func gameState(r *room.Room) Outbound {
	return toRoom(r, MsgGameStateUpdate, GameStateMessage{
		State:    r.Session.Snapshot(),
		RoomCode: r.Code,
		Players:  r.Roster(),
	})
}
