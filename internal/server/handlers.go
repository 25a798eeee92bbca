package server

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/database"
	"impostor-server/internal/domain"
	"impostor-server/internal/impostor"
	"impostor-server/internal/room"
)

var errNoGame = domain.New(domain.CodeWrongPhase, "No game in progress.")

func decode(msg ClientMessage, v any) error {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return domain.Newf(domain.CodeInvalidPayload, "Invalid %s payload.", msg.Type)
	}
	return nil
}

// resolve finds the caller's room. A roomCode sent by the client must match
// the room the connection is bound to.
func (e *Engine) resolve(connID, roomCode string) (*room.Room, *room.Participant, error) {
	r, p, err := e.rooms.Resolve(connID)
	if err != nil {
		return nil, nil, err
	}
	if code := room.NormalizeCode(roomCode); code != "" && code != r.Code {
		return nil, nil, domain.ErrRoomNotFound
	}
	return r, p, nil
}

func (e *Engine) handleCreateRoom(connID string, msg ClientMessage) []Outbound {
	var req CreateRoomRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	r, err := e.rooms.Create(connID, req.RoomCode, req.Nickname)
	if err != nil {
		log.Debug().Err(err).Str("conn", connID).Msg("create_room rejected")
		return []Outbound{errorTo(connID, err)}
	}

	log.Info().Str("room", r.Code).Str("nickname", r.AdminNickname).Str("conn", connID).Msg("Room created")
	return []Outbound{unicast(connID, MsgRoomCreated, RoomCreatedResponse{
		RoomCode: r.Code,
		Members:  r.Roster(),
		IsAdmin:  true,
	})}
}

func (e *Engine) handleJoinRoom(connID string, msg ClientMessage) []Outbound {
	var req JoinRoomRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	r, err := e.rooms.Join(connID, req.RoomCode, req.Nickname)
	if err != nil {
		log.Debug().Err(err).Str("conn", connID).Str("room", req.RoomCode).Msg("join_room rejected")
		return []Outbound{errorTo(connID, err)}
	}

	p := r.MemberByConn(connID)
	log.Info().Str("room", r.Code).Str("nickname", p.Nickname).Int("members", len(r.Members)).Msg("Participant joined")
	return []Outbound{toRoom(r, MsgUserJoined, UserJoinedNotification{
		RoomCode: r.Code,
		Nickname: p.Nickname,
		Members:  r.Roster(),
	})}
}

func (e *Engine) handleStartGame(connID string, msg ClientMessage) []Outbound {
	var req StartGameRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	r, p, err := e.resolve(connID, req.RoomCode)
	if err != nil {
		return []Outbound{errorTo(connID, err)}
	}
	if !p.IsAdmin {
		return []Outbound{errorTo(connID, domain.ErrNotAdmin)}
	}
	if len(r.Members) < impostor.MinPlayers {
		return []Outbound{errorTo(connID, domain.Newf(domain.CodeNotEnoughPlayers, "Need %d+ players.", impostor.MinPlayers))}
	}
	s, err := impostor.New(req.Mode)
	if err != nil {
		log.Debug().Err(err).Str("room", r.Code).Msg("start_game rejected")
		return []Outbound{errorTo(connID, err)}
	}
	if r.InGame() {
		return []Outbound{errorTo(connID, domain.ErrAlreadyStarted)}
	}
	r.Session = s

	code := r.Code
	e.scheduler.Schedule(code, e.countdown, func() {
		e.post(CountdownElapsed{Room: code, Session: s})
	})

	log.Info().Str("room", code).Str("mode", req.Mode).Dur("countdown", e.countdown).Msg("Game starting")
	return []Outbound{toRoom(r, MsgGameStarting, GameStartingNotification{
		Mode:             s.Mode(),
		CountdownSeconds: e.countdown.Seconds(),
	})}
}

// sessionAction resolves the caller and its running session.
func (e *Engine) sessionAction(connID, roomCode string) (*room.Room, *room.Participant, error) {
	r, p, err := e.resolve(connID, roomCode)
	if err != nil {
		return nil, nil, err
	}
	if r.Session == nil {
		return nil, nil, errNoGame
	}
	return r, p, nil
}

func (e *Engine) handleSubmitClue(connID string, msg ClientMessage) []Outbound {
	var req SubmitClueRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}
	r, p, err := e.sessionAction(connID, req.RoomCode)
	if err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	tr, err := r.Session.SubmitClue(p.Nickname, req.Clue)
	if err != nil {
		log.Debug().Err(err).Str("room", r.Code).Str("nickname", p.Nickname).Msg("submit_clue rejected")
		return []Outbound{errorTo(connID, err)}
	}
	e.logTransition(r, tr)
	return []Outbound{gameState(r)}
}

func (e *Engine) handleSubmitRoundEndVote(connID string, msg ClientMessage) []Outbound {
	var req SubmitRoundEndVoteRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}
	r, p, err := e.sessionAction(connID, req.RoomCode)
	if err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	tr, err := r.Session.SubmitRoundEndVote(p.Nickname, req.VoteChoice)
	if err != nil {
		log.Debug().Err(err).Str("room", r.Code).Str("nickname", p.Nickname).Msg("submit_round_end_vote rejected")
		return []Outbound{errorTo(connID, err)}
	}
	e.logTransition(r, tr)
	return []Outbound{gameState(r)}
}

func (e *Engine) handleSubmitVote(connID string, msg ClientMessage) []Outbound {
	var req SubmitVoteRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}
	r, p, err := e.sessionAction(connID, req.RoomCode)
	if err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	tr, err := r.Session.SubmitVote(p.Nickname, req.VotedNickname)
	if err != nil {
		log.Debug().Err(err).Str("room", r.Code).Str("nickname", p.Nickname).Msg("submit_vote rejected")
		return []Outbound{errorTo(connID, err)}
	}
	e.logTransition(r, tr)
	if tr.To == impostor.PhaseReveal {
		e.record(r)
	}
	return []Outbound{gameState(r)}
}

func (e *Engine) handleReturnToLobby(connID string, msg ClientMessage) []Outbound {
	var req ReturnToLobbyRequest
	if err := decode(msg, &req); err != nil {
		return []Outbound{errorTo(connID, err)}
	}
	r, _, err := e.resolve(connID, req.RoomCode)
	if err != nil {
		return []Outbound{errorTo(connID, err)}
	}

	ended := GameEndedNotification{Message: returnedMessage}
	if r.Session == nil {
		return []Outbound{unicast(connID, MsgGameEnded, ended)}
	}
	if r.Session.Phase() != impostor.PhaseReveal {
		return []Outbound{errorTo(connID, domain.ErrCannotReturn)}
	}

	r.Session = nil
	log.Info().Str("room", r.Code).Msg("Room returned to lobby")
	return []Outbound{toRoom(r, MsgGameEnded, ended)}
}

func (e *Engine) logTransition(r *room.Room, tr impostor.Transition) {
	if !tr.Changed() {
		return
	}
	log.Info().
		Str("room", r.Code).
		Str("from", tr.From.String()).
		Str("phase", tr.To.String()).
		Int("round", tr.ToRound).
		Msg("Phase changed")
}

func (e *Engine) record(r *room.Room) {
	s := r.Session
	res := s.Results()
	if e.recorder == nil || res == nil {
		return
	}
	e.recorder.Record(database.SessionResult{
		RoomCode:       r.Code,
		Mode:           s.Mode(),
		Category:       s.Category(),
		SecretWord:     s.SecretWord(),
		Impostors:      res.ImpostorNicknames,
		Winner:         string(res.Winner),
		ImpostorCaught: res.ImpostorCaught,
		VoteCounts:     res.VoteCounts,
		Players:        s.TurnOrder(),
		RoundsPlayed:   s.Round(),
		FinishedAt:     time.Now(),
	})
}
