package server

import (
	"impostor-server/internal/impostor"
	"impostor-server/internal/room"
)

// ============================================================================
// ERROR RESPONSES
// ============================================================================
// tygo:generate
type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// ============================================================================
// CREATE ROOM (create_room)
// ============================================================================
// tygo:generate
type CreateRoomRequest struct {
	RoomCode string `json:"roomCode"` // empty: server generates one
	Nickname string `json:"nickname"`
}

// tygo:generate
type RoomCreatedResponse struct {
	RoomCode string            `json:"roomCode"`
	Members  []room.MemberView `json:"members"`
	IsAdmin  bool              `json:"isAdmin"`
}

// ============================================================================
// JOIN ROOM (join_room)
// ============================================================================
// tygo:generate
type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

// tygo:generate
type UserJoinedNotification struct {
	RoomCode string            `json:"roomCode"`
	Nickname string            `json:"nickname"`
	Members  []room.MemberView `json:"members"`
}

// ============================================================================
// LEAVE (leave_room, disconnect)
// ============================================================================
// tygo:generate
type UserLeftNotification struct {
	Nickname string            `json:"nickname"`
	Members  []room.MemberView `json:"members"`
}

// tygo:generate
type RoomDeletedNotification struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// ============================================================================
// START GAME (start_game)
// ============================================================================
// tygo:generate
type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
	Mode     string `json:"mode"`
}

// tygo:generate
type GameStartingNotification struct {
	Mode             string  `json:"mode"`
	CountdownSeconds float64 `json:"countdownSeconds"`
}

// tygo:generate
type RoleAssignedMessage struct {
	Role     impostor.Role `json:"role"`
	Category string        `json:"category"`
	Word     string        `json:"word,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// ============================================================================
// GAME ACTIONS
// ============================================================================
// tygo:generate
type SubmitClueRequest struct {
	RoomCode string `json:"roomCode"`
	Clue     string `json:"clue"`
}

// tygo:generate
type SubmitRoundEndVoteRequest struct {
	RoomCode   string                  `json:"roomCode"`
	VoteChoice impostor.RoundEndChoice `json:"voteChoice"`
}

// tygo:generate
type SubmitVoteRequest struct {
	RoomCode      string `json:"roomCode"`
	VotedNickname string `json:"votedNickname"`
}

// tygo:generate
type ReturnToLobbyRequest struct {
	RoomCode string `json:"roomCode"`
}

// ============================================================================
// GAME STATE (game_state_update broadcast)
// ============================================================================
// tygo:generate
type GameStateMessage struct {
	impostor.State
	RoomCode string            `json:"roomCode"`
	Players  []room.MemberView `json:"players"`
}

// tygo:generate
type GameEndedNotification struct {
	Message string `json:"message"`
}

// ============================================================================
// HTTP
// ============================================================================
type RoomsResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

type HealthResponse struct {
	Status      string            `json:"status"`
	Rooms       int               `json:"rooms"`
	Connections int               `json:"connections"`
	Archive     map[string]string `json:"archive"`
}
