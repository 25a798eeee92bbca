package server

import "encoding/json"

type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Inbound message types.
const (
	MsgPing                 = "ping"
	MsgCreateRoom           = "create_room"
	MsgJoinRoom             = "join_room"
	MsgStartGame            = "start_game"
	MsgSubmitClue           = "submit_clue"
	MsgSubmitRoundEndVote   = "submit_round_end_vote"
	MsgSubmitVote           = "submit_vote"
	MsgRequestReturnToLobby = "request_return_to_lobby"
	MsgLeaveRoom            = "leave_room"
)

// Outbound message types.
const (
	MsgPong             = "pong"
	MsgError            = "error"
	MsgRoomCreated      = "room_created"
	MsgUserJoined       = "user_joined"
	MsgUserLeft         = "user_left"
	MsgRoomDeleted      = "room_deleted"
	MsgGameStarting     = "game_starting"
	MsgGameRoleAssigned = "game_role_assigned"
	MsgGameStateUpdate  = "game_state_update"
	MsgGameEnded        = "game_ended"
)
