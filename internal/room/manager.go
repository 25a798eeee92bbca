package room

import (
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"impostor-server/internal/domain"
	"impostor-server/internal/impostor"
)

const MaxNicknameLength = 20

type DissolveReason string

const (
	DissolvedAdminLeft DissolveReason = "admin_left"
	DissolvedEmpty     DissolveReason = "last_member_left"
)

// LeaveResult describes what a departure did to the room.
type LeaveResult struct {
	Room     *Room
	Nickname string
	WasAdmin bool

	Dissolved bool
	Reason    DissolveReason

	// SessionEnded is set when a session was torn down. A countdown survives
	// a non-admin departure; its roster is taken when the countdown ends.
	SessionEnded bool

	// Remaining are the connections that were still in the room after the
	// departure, captured before any dissolution.
	Remaining []string
}

// Manager applies the membership rules on top of a Store. Calls must be
// serialized by the caller.
type Manager struct {
	store Store
	rng   *rand.Rand
	now   func() time.Time
}

func NewManager(store Store, rng *rand.Rand) *Manager {
	return &Manager{store: store, rng: rng, now: time.Now}
}

func (m *Manager) Store() Store {
	return m.store
}

// Create registers a room with connID as its admin. An empty code gets a
// generated one.
func (m *Manager) Create(connID, code, nickname string) (*Room, error) {
	if _, ok := m.store.Resolve(connID); ok {
		return nil, domain.ErrAlreadyInRoom
	}
	nickname, err := ValidateNickname(nickname)
	if err != nil {
		return nil, err
	}

	code = NormalizeCode(code)
	if code == "" {
		code = GenerateCode(m.rng, func(c string) bool {
			_, err := m.store.Get(c)
			return err == nil
		})
	} else if err := ValidateCode(code); err != nil {
		return nil, err
	}

	now := m.now()
	r := &Room{
		Code:          code,
		AdminNickname: nickname,
		Members: []*Participant{{
			Nickname: nickname,
			ConnID:   connID,
			IsAdmin:  true,
			JoinedAt: now,
		}},
		CreatedAt: now,
	}
	if err := m.store.Create(r); err != nil {
		return nil, err
	}
	m.store.Index(connID, code)
	return r, nil
}

func (m *Manager) Join(connID, code, nickname string) (*Room, error) {
	if _, ok := m.store.Resolve(connID); ok {
		return nil, domain.ErrAlreadyInRoom
	}
	nickname, err := ValidateNickname(nickname)
	if err != nil {
		return nil, err
	}
	code = NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrRoomCodeInvalid
	}

	r, err := m.store.Get(code)
	if err != nil {
		return nil, err
	}
	if len(r.Members) >= MaxMembers {
		return nil, domain.ErrRoomFull
	}
	if r.InGame() {
		return nil, domain.ErrGameInProgress
	}
	if r.Member(nickname) != nil {
		return nil, domain.ErrNicknameTaken
	}

	r.Members = append(r.Members, &Participant{
		Nickname: nickname,
		ConnID:   connID,
		JoinedAt: m.now(),
	})
	m.store.Index(connID, code)
	return r, nil
}

// Leave removes connID from its room. ok is false when the connection was
// not in a room. Admin departure or an empty room dissolves the room; any
// other departure ends a session that is past its countdown.
func (m *Manager) Leave(connID string) (res LeaveResult, ok bool) {
	r, found := m.store.Resolve(connID)
	m.store.Unindex(connID)
	if !found {
		return LeaveResult{}, false
	}

	p := r.remove(connID)
	if p == nil {
		return LeaveResult{}, false
	}

	res = LeaveResult{
		Room:      r,
		Nickname:  p.Nickname,
		WasAdmin:  p.IsAdmin,
		Remaining: r.ConnIDs(),
	}

	switch {
	case p.IsAdmin:
		res.Dissolved, res.Reason = true, DissolvedAdminLeft
	case len(r.Members) == 0:
		res.Dissolved, res.Reason = true, DissolvedEmpty
	}
	if r.Session != nil && (res.Dissolved || r.Session.Phase() != impostor.PhaseCountdown) {
		res.SessionEnded = true
		r.Session = nil
	}
	if res.Dissolved {
		m.store.Delete(r.Code)
	}
	return res, true
}

// Resolve returns the room and participant bound to connID.
func (m *Manager) Resolve(connID string) (*Room, *Participant, error) {
	r, ok := m.store.Resolve(connID)
	if !ok {
		return nil, nil, domain.ErrNotInRoom
	}
	p := r.MemberByConn(connID)
	if p == nil {
		return nil, nil, domain.ErrNotInRoom
	}
	return r, p, nil
}

// Dissolve deletes a room outright, returning the connections it held.
func (m *Manager) Dissolve(code string) []string {
	r, err := m.store.Get(code)
	if err != nil {
		return nil
	}
	conns := r.ConnIDs()
	r.Session = nil
	m.store.Delete(code)
	return conns
}

// ValidateNickname trims nickname and checks its length in characters.
func ValidateNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if n := utf8.RuneCountInString(nickname); n == 0 || n > MaxNicknameLength {
		return "", domain.ErrNicknameInvalid
	}
	return nickname, nil
}
