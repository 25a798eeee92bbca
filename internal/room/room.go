package room

import (
	"slices"
	"time"

	"impostor-server/internal/impostor"
)

const MaxMembers = impostor.MaxPlayers

// Room is a lobby identified by its code. Session is nil in the lobby and set
// from start_game until the room returns to the lobby.
type Room struct {
	Code          string
	AdminNickname string
	Members       []*Participant // join order
	Session       *impostor.Session
	CreatedAt     time.Time
}

// Participant is one connection's membership in a room. Nicknames are unique
// within a room.
type Participant struct {
	Nickname string
	ConnID   string
	IsAdmin  bool
	JoinedAt time.Time
}

// MemberView is the roster entry sent to clients.
type MemberView struct {
	Nickname string `json:"nickname"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Summary is the read-only listing entry served on /rooms.
type Summary struct {
	Code      string `json:"code"`
	Admin     string `json:"admin"`
	UserCount int    `json:"userCount"`
	Mode      string `json:"mode,omitempty"`
	Phase     string `json:"phase"`
	Round     int    `json:"round,omitempty"`
}

// Member returns the participant with nickname, or nil.
func (r *Room) Member(nickname string) *Participant {
	for _, p := range r.Members {
		if p.Nickname == nickname {
			return p
		}
	}
	return nil
}

// MemberByConn returns the participant bound to connID, or nil.
func (r *Room) MemberByConn(connID string) *Participant {
	for _, p := range r.Members {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// Nicknames and ConnIDs list members in join order.
func (r *Room) Nicknames() []string {
	out := make([]string, 0, len(r.Members))
	for _, p := range r.Members {
		out = append(out, p.Nickname)
	}
	return out
}

func (r *Room) ConnIDs() []string {
	out := make([]string, 0, len(r.Members))
	for _, p := range r.Members {
		out = append(out, p.ConnID)
	}
	return out
}

func (r *Room) Roster() []MemberView {
	out := make([]MemberView, 0, len(r.Members))
	for _, p := range r.Members {
		out = append(out, MemberView{Nickname: p.Nickname, IsAdmin: p.IsAdmin})
	}
	return out
}

// InGame is true from start_game on, countdown included.
func (r *Room) InGame() bool {
	return r.Session != nil
}

func (r *Room) Summary() Summary {
	s := Summary{
		Code:      r.Code,
		Admin:     r.AdminNickname,
		UserCount: len(r.Members),
		Phase:     "lobby",
	}
	if r.Session != nil {
		s.Mode = r.Session.Mode()
		s.Phase = r.Session.Phase().String()
		s.Round = r.Session.Round()
	}
	return s
}

func (r *Room) remove(connID string) *Participant {
	i := slices.IndexFunc(r.Members, func(p *Participant) bool { return p.ConnID == connID })
	if i < 0 {
		return nil
	}
	p := r.Members[i]
	r.Members = slices.Delete(r.Members, i, i+1)
	return p
}
