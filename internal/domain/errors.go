package domain

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the categories clients and logs care about.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindForbidden     Kind = "forbidden"
	KindStateMismatch Kind = "state_mismatch"
	KindCapacity      Kind = "capacity"
	KindInternal      Kind = "internal"
)

// Error is a validation failure reported back to the originating connection.
// It renders as "CODE: message", the same shape the lobby protocol has always used.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is matches on Code so that a sentinel matches an error with a more
// specific message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New builds an error with the kind registered for code.
func New(code, message string) *Error {
	return &Error{Kind: kindOfCode(code), Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the code of err, or INTERNAL.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

const (
	CodeInternal         = "INTERNAL"
	CodeCodeTaken        = "CODE_TAKEN"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomFull         = "ROOM_FULL"
	CodeGameInProgress   = "GAME_IN_PROGRESS"
	CodeNicknameTaken    = "NICKNAME_TAKEN"
	CodeNicknameInvalid  = "NICKNAME_INVALID"
	CodeRoomCodeInvalid  = "ROOM_CODE_INVALID"
	CodeAlreadyInRoom    = "ALREADY_IN_ROOM"
	CodeNotInRoom        = "NOT_IN_ROOM"
	CodeNotAdmin         = "NOT_ADMIN"
	CodeNotEnoughPlayers = "NOT_ENOUGH_PLAYERS"
	CodeModeRequired     = "MODE_REQUIRED"
	CodeUnknownMode      = "UNKNOWN_MODE"
	CodeAlreadyStarted   = "ALREADY_STARTED"
	CodeWrongPhase       = "WRONG_PHASE"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeAlreadySubmitted = "ALREADY_SUBMITTED"
	CodeInvalidClue      = "INVALID_CLUE"
	CodeInvalidChoice    = "INVALID_CHOICE"
	CodeAlreadyVoted     = "ALREADY_VOTED"
	CodeInvalidTarget    = "INVALID_TARGET"
	CodeCannotReturn     = "CANNOT_RETURN"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeUnknownMessage   = "UNKNOWN_MESSAGE"
	CodeRateLimited      = "RATE_LIMITED"
)

var codeKinds = map[string]Kind{
	CodeCodeTaken:        KindConflict,
	CodeRoomNotFound:     KindNotFound,
	CodeRoomFull:         KindCapacity,
	CodeGameInProgress:   KindStateMismatch,
	CodeNicknameTaken:    KindConflict,
	CodeNicknameInvalid:  KindInvalidInput,
	CodeRoomCodeInvalid:  KindInvalidInput,
	CodeAlreadyInRoom:    KindConflict,
	CodeNotInRoom:        KindNotFound,
	CodeNotAdmin:         KindForbidden,
	CodeNotEnoughPlayers: KindCapacity,
	CodeModeRequired:     KindInvalidInput,
	CodeUnknownMode:      KindInvalidInput,
	CodeAlreadyStarted:   KindConflict,
	CodeWrongPhase:       KindStateMismatch,
	CodeNotYourTurn:      KindForbidden,
	CodeAlreadySubmitted: KindConflict,
	CodeInvalidClue:      KindInvalidInput,
	CodeInvalidChoice:    KindInvalidInput,
	CodeAlreadyVoted:     KindConflict,
	CodeInvalidTarget:    KindNotFound,
	CodeCannotReturn:     KindStateMismatch,
	CodeInvalidPayload:   KindInvalidInput,
	CodeUnknownMessage:   KindInvalidInput,
	CodeRateLimited:      KindCapacity,
}

func kindOfCode(code string) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindInternal
}

// Sentinels for errors.Is checks.
var (
	ErrCodeTaken        = New(CodeCodeTaken, "Room code exists.")
	ErrRoomNotFound     = New(CodeRoomNotFound, "Room not found.")
	ErrRoomFull         = New(CodeRoomFull, "Room full.")
	ErrGameInProgress   = New(CodeGameInProgress, "Game already in progress.")
	ErrNicknameTaken    = New(CodeNicknameTaken, "Nickname taken.")
	ErrNicknameInvalid  = New(CodeNicknameInvalid, "Nickname must be 1-20 characters.")
	ErrRoomCodeInvalid  = New(CodeRoomCodeInvalid, "Room code must be 4-10 letters or digits.")
	ErrAlreadyInRoom    = New(CodeAlreadyInRoom, "Already in a room.")
	ErrNotInRoom        = New(CodeNotInRoom, "Not in a room.")
	ErrNotAdmin         = New(CodeNotAdmin, "Only admin can start.")
	ErrNotEnoughPlayers = New(CodeNotEnoughPlayers, "Not enough players.")
	ErrModeRequired     = New(CodeModeRequired, "Mode must be selected.")
	ErrUnknownMode      = New(CodeUnknownMode, "Unknown game mode.")
	ErrAlreadyStarted   = New(CodeAlreadyStarted, "Game already started.")
	ErrWrongPhase       = New(CodeWrongPhase, "Action not allowed in this phase.")
	ErrNotYourTurn      = New(CodeNotYourTurn, "Not your turn.")
	ErrAlreadySubmitted = New(CodeAlreadySubmitted, "Already submitted a clue this round.")
	ErrInvalidClue      = New(CodeInvalidClue, "Invalid clue (1-50 chars).")
	ErrInvalidChoice    = New(CodeInvalidChoice, "Vote must be next_round or vote_now.")
	ErrAlreadyVoted     = New(CodeAlreadyVoted, "You have already voted.")
	ErrInvalidTarget    = New(CodeInvalidTarget, "Invalid vote target.")
	ErrCannotReturn     = New(CodeCannotReturn, "Cannot return to lobby now.")
	ErrInvalidPayload   = New(CodeInvalidPayload, "Invalid JSON.")
	ErrUnknownMessage   = New(CodeUnknownMessage, "Message type required.")
	ErrRateLimited      = New(CodeRateLimited, "Too many messages, slow down.")
)
