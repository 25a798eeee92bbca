package room_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor-server/internal/domain"
	"impostor-server/internal/impostor"
	"impostor-server/internal/random"
	"impostor-server/internal/room"
	"impostor-server/internal/words"
)

func newManager() *room.Manager {
	return room.NewManager(room.NewMemoryStore(), random.New(42))
}

// roomWith creates ABCD with admin "Admin" on conn-0 and joins the given
// nicknames on conn-1, conn-2, ...
func roomWith(t *testing.T, m *room.Manager, nicknames ...string) *room.Room {
	t.Helper()
	r, err := m.Create("conn-0", "ABCD", "Admin")
	require.NoError(t, err)
	for i, n := range nicknames {
		_, err := m.Join(fmt.Sprintf("conn-%d", i+1), "ABCD", n)
		require.NoError(t, err)
	}
	return r
}

// countdownSession attaches a session that has not begun yet.
func countdownSession(t *testing.T, r *room.Room) {
	t.Helper()
	s, err := impostor.New(impostor.ModeImpostor)
	require.NoError(t, err)
	r.Session = s
}

// startSession attaches a session already in clue round 1.
func startSession(t *testing.T, r *room.Room) {
	t.Helper()
	countdownSession(t, r)
	_, err := r.Session.Begin(r.Nicknames(), words.Default, random.New(1))
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	assert := assert.New(t)
	m := newManager()

	r, err := m.Create("conn-0", " abcd ", "  Alice ")
	require.NoError(t, err)

	assert.Equal("ABCD", r.Code)
	assert.Equal("Alice", r.AdminNickname)
	assert.Equal([]room.MemberView{{Nickname: "Alice", IsAdmin: true}}, r.Roster())
	assert.False(r.InGame())

	got, p, err := m.Resolve("conn-0")
	assert.NoError(err)
	assert.Same(r, got)
	assert.True(p.IsAdmin)
}

func TestCreateGeneratesCode(t *testing.T) {
	m := newManager()

	r, err := m.Create("conn-0", "", "Alice")
	require.NoError(t, err)

	assert.Len(t, r.Code, room.GeneratedCodeLength)
	assert.NoError(t, room.ValidateCode(r.Code))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		nickname string
		want     error
	}{
		{"empty nickname", "ABCD", "", domain.ErrNicknameInvalid},
		{"blank nickname", "ABCD", "   ", domain.ErrNicknameInvalid},
		{"long nickname", "ABCD", strings.Repeat("n", 21), domain.ErrNicknameInvalid},
		{"bad code", "AB!", "Alice", domain.ErrRoomCodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager()
			_, err := m.Create("conn-0", tt.code, tt.nickname)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
			assert.Zero(t, m.Store().Len())
		})
	}
}

func TestCreateCodeTaken(t *testing.T) {
	m := newManager()
	roomWith(t, m)

	_, err := m.Create("conn-9", "abcd", "Bob")
	assert.ErrorIs(t, err, domain.ErrCodeTaken)

	_, ok := m.Store().Resolve("conn-9")
	assert.False(t, ok)
}

func TestCreateWhileInRoom(t *testing.T) {
	m := newManager()
	roomWith(t, m)

	_, err := m.Create("conn-0", "WXYZ", "Alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyInRoom)
	assert.Equal(t, 1, m.Store().Len())
}

func TestJoin(t *testing.T) {
	assert := assert.New(t)
	m := newManager()
	roomWith(t, m)

	r, err := m.Join("conn-1", "abcd", "Bob")
	require.NoError(t, err)

	assert.Equal([]string{"Admin", "Bob"}, r.Nicknames())
	assert.Equal([]string{"conn-0", "conn-1"}, r.ConnIDs())
	assert.False(r.Member("Bob").IsAdmin)
}

func TestJoinValidation(t *testing.T) {
	m := newManager()
	roomWith(t, m, "Bob")

	_, err := m.Join("conn-9", "WXYZ", "Carol")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = m.Join("conn-9", "", "Carol")
	assert.ErrorIs(t, err, domain.ErrRoomCodeInvalid)

	_, err = m.Join("conn-9", "ABCD", "")
	assert.ErrorIs(t, err, domain.ErrNicknameInvalid)

	_, err = m.Join("conn-1", "ABCD", "Carol")
	assert.ErrorIs(t, err, domain.ErrAlreadyInRoom)
}

func TestJoinNicknameCaseSensitive(t *testing.T) {
	m := newManager()
	roomWith(t, m, "Bob")

	_, err := m.Join("conn-9", "ABCD", "Bob")
	assert.ErrorIs(t, err, domain.ErrNicknameTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = m.Join("conn-9", "ABCD", "bob")
	assert.NoError(t, err)
}

func TestJoinFullRoom(t *testing.T) {
	m := newManager()
	var names []string
	for i := 1; i < room.MaxMembers; i++ {
		names = append(names, fmt.Sprintf("P%d", i))
	}
	r := roomWith(t, m, names...)
	require.Len(t, r.Members, room.MaxMembers)

	_, err := m.Join("conn-late", "ABCD", "Late")
	assert.ErrorIs(t, err, domain.ErrRoomFull)
	assert.Equal(t, domain.KindCapacity, domain.KindOf(err))
	assert.Len(t, r.Members, room.MaxMembers)
}

func TestJoinMidSession(t *testing.T) {
	m := newManager()
	r := roomWith(t, m, "Bob")
	startSession(t, r)

	_, err := m.Join("conn-late", "ABCD", "Late")
	assert.ErrorIs(t, err, domain.ErrGameInProgress)
	assert.Equal(t, domain.KindStateMismatch, domain.KindOf(err))
}

func TestLeaveNotInRoom(t *testing.T) {
	m := newManager()
	_, ok := m.Leave("ghost")
	assert.False(t, ok)
}

func TestLeaveAdminDissolves(t *testing.T) {
	assert := assert.New(t)
	m := newManager()
	r := roomWith(t, m, "Bob", "Carol")
	startSession(t, r)

	res, ok := m.Leave("conn-0")
	require.True(t, ok)

	assert.True(res.Dissolved)
	assert.Equal(room.DissolvedAdminLeft, res.Reason)
	assert.True(res.WasAdmin)
	assert.True(res.SessionEnded)
	assert.Equal([]string{"conn-1", "conn-2"}, res.Remaining)
	assert.Nil(r.Session)

	_, err := m.Store().Get("ABCD")
	assert.ErrorIs(err, domain.ErrRoomNotFound)
	for _, c := range []string{"conn-0", "conn-1", "conn-2"} {
		_, ok := m.Store().Resolve(c)
		assert.False(ok, c)
	}
}

func TestLeaveMemberKeepsRoomAndEndsSession(t *testing.T) {
	assert := assert.New(t)
	m := newManager()
	r := roomWith(t, m, "Bob", "Carol")
	startSession(t, r)

	res, ok := m.Leave("conn-1")
	require.True(t, ok)

	assert.False(res.Dissolved)
	assert.Equal("Bob", res.Nickname)
	assert.True(res.SessionEnded)
	assert.Equal([]string{"conn-0", "conn-2"}, res.Remaining)
	assert.Nil(r.Session)
	assert.Equal([]string{"Admin", "Carol"}, r.Nicknames())

	got, err := m.Store().Get("ABCD")
	assert.NoError(err)
	assert.Same(r, got)
}

func TestLeaveMemberDuringCountdownKeepsSession(t *testing.T) {
	assert := assert.New(t)
	m := newManager()
	r := roomWith(t, m, "Bob", "Carol")
	countdownSession(t, r)
	s := r.Session

	res, ok := m.Leave("conn-2")
	require.True(t, ok)

	assert.False(res.Dissolved)
	assert.False(res.SessionEnded)
	assert.Same(s, r.Session)
	assert.Equal([]string{"Admin", "Bob"}, r.Nicknames())

	// Down to the admin alone: the session still waits for its countdown.
	res, ok = m.Leave("conn-1")
	require.True(t, ok)
	assert.False(res.SessionEnded)
	assert.Same(s, r.Session)
}

func TestLeaveAdminDuringCountdownDissolves(t *testing.T) {
	m := newManager()
	r := roomWith(t, m, "Bob")
	countdownSession(t, r)

	res, ok := m.Leave("conn-0")
	require.True(t, ok)
	assert.True(t, res.Dissolved)
	assert.True(t, res.SessionEnded)
	assert.Nil(t, r.Session)
}

func TestLeaveMemberInLobby(t *testing.T) {
	m := newManager()
	roomWith(t, m, "Bob")

	res, ok := m.Leave("conn-1")
	require.True(t, ok)
	assert.False(t, res.SessionEnded)
	assert.False(t, res.Dissolved)

	// Leaving twice is a no-op.
	_, ok = m.Leave("conn-1")
	assert.False(t, ok)
}

func TestDissolve(t *testing.T) {
	m := newManager()
	roomWith(t, m, "Bob")

	conns := m.Dissolve("ABCD")
	assert.Equal(t, []string{"conn-0", "conn-1"}, conns)
	assert.Zero(t, m.Store().Len())
	assert.Nil(t, m.Dissolve("ABCD"))
}

func TestSummary(t *testing.T) {
	m := newManager()
	r := roomWith(t, m, "Bob")

	assert.Equal(t, room.Summary{Code: "ABCD", Admin: "Admin", UserCount: 2, Phase: "lobby"}, r.Summary())

	countdownSession(t, r)
	s := r.Summary()
	assert.Equal(t, impostor.ModeImpostor, s.Mode)
	assert.Equal(t, "countdown", s.Phase)
}

func TestValidateNickname(t *testing.T) {
	got, err := room.ValidateNickname(strings.Repeat("ñ", 20))
	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("ñ", 20), got)

	_, err = room.ValidateNickname(strings.Repeat("ñ", 21))
	assert.ErrorIs(t, err, domain.ErrNicknameInvalid)
}
