package impostor

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"

	"impostor-server/internal/domain"
	"impostor-server/internal/random"
	"impostor-server/internal/words"
)

const (
	ModeImpostor = "impostor"

	RoundLimit            = 3
	MinPlayers            = 2
	MaxPlayers            = 12
	TwoImpostorMinPlayers = 5
	TwoImpostorChance     = 0.25
	MaxClueLength         = 50
)

// Session is one round of Impostor inside a room. The roster is fixed when the
// countdown ends; a roster change after that ends the session instead of
// mutating it.
type Session struct {
	mode      string
	phase     Phase
	round     int
	category  string
	word      string
	members   []string
	impostors []string
	turnOrder []string
	turnIndex int

	// clues[nickname][round-1]; "" marks an empty slot.
	clues         map[string][]string
	roundEndVotes map[string]RoundEndChoice
	finalVotes    map[string]string
	results       *Results
}

// Transition describes the phase change caused by an accepted action.
type Transition struct {
	From      Phase
	To        Phase
	FromRound int
	ToRound   int
}

func (t Transition) Changed() bool {
	return t.From != t.To || t.FromRound != t.ToRound
}

// RoleAssignment is the private message each participant receives at the
// start of play.
type RoleAssignment struct {
	Role     Role
	Category string
	Word     string
}

// New returns a session for mode in the countdown phase. Roles, word and turn
// order are chosen by Begin from whoever is still in the room when the
// countdown ends.
func New(mode string) (*Session, error) {
	if mode == "" {
		return nil, domain.ErrModeRequired
	}
	if mode != ModeImpostor {
		return nil, domain.Newf(domain.CodeUnknownMode, "Mode %q not implemented or unknown.", mode)
	}
	return &Session{mode: mode, phase: PhaseCountdown}, nil
}

// Mode is the game mode chosen by the admin.
func (s *Session) Mode() string { return s.mode }

// Phase is the current state machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Round is the 1-based clue round, or 0 during the countdown.
func (s *Session) Round() int { return s.round }

// Category and SecretWord are empty until Begin.
func (s *Session) Category() string   { return s.category }
func (s *Session) SecretWord() string { return s.word }

// Members, Impostors and TurnOrder return copies of the roster fixed by Begin.
func (s *Session) Members() []string   { return slices.Clone(s.members) }
func (s *Session) Impostors() []string { return slices.Clone(s.impostors) }
func (s *Session) TurnOrder() []string { return slices.Clone(s.turnOrder) }

// Results is nil until final voting completes.
func (s *Session) Results() *Results { return s.results }

func (s *Session) IsMember(nickname string) bool {
	return slices.Contains(s.members, nickname)
}

func (s *Session) IsImpostor(nickname string) bool {
	return slices.Contains(s.impostors, nickname)
}

// CurrentTurn is the nickname expected to give the next clue, or "" outside
// the clue round.
func (s *Session) CurrentTurn() string {
	if s.phase != PhaseClueRound || s.turnIndex >= len(s.turnOrder) {
		return ""
	}
	return s.turnOrder[s.turnIndex]
}

// Clue returns the clue nickname gave in round (1-based).
func (s *Session) Clue(nickname string, round int) (string, bool) {
	slots, ok := s.clues[nickname]
	if !ok || round < 1 || round > len(slots) || slots[round-1] == "" {
		return "", false
	}
	return slots[round-1], true
}

// Role returns the private assignment for nickname. Impostors never get the word.
func (s *Session) Role(nickname string) RoleAssignment {
	if s.IsImpostor(nickname) {
		return RoleAssignment{Role: RoleImpostor, Category: s.category}
	}
	return RoleAssignment{Role: RoleInnocent, Category: s.category, Word: s.word}
}

// Begin ends the countdown and opens clue round 1 for members. It selects
// impostors, category, word and turn order; the roster is fixed from here on.
func (s *Session) Begin(members []string, table words.Table, r *rand.Rand) (Transition, error) {
	if s.phase != PhaseCountdown {
		return Transition{}, domain.ErrWrongPhase
	}
	if len(members) < MinPlayers {
		return Transition{}, domain.Newf(domain.CodeNotEnoughPlayers, "Need %d+ players.", MinPlayers)
	}

	count := 1
	if len(members) >= TwoImpostorMinPlayers && random.Chance(r, TwoImpostorChance) {
		count = 2
	}
	category, word, err := table.Choose(r)
	if err != nil {
		return Transition{}, fmt.Errorf("choose word: %w", err)
	}

	s.members = slices.Clone(members)
	s.impostors = random.Sample(r, s.members, count)
	s.category = category
	s.word = word
	s.turnOrder = slices.Clone(members)
	random.Shuffle(r, s.turnOrder)
	s.clues = make(map[string][]string, len(members))
	for _, m := range members {
		s.clues[m] = make([]string, RoundLimit)
	}

	t := s.transition()
	s.phase = PhaseClueRound
	s.round = 1
	s.turnIndex = 0
	return s.finish(t)
}

// SubmitClue records nickname's clue for the current round and advances the
// rotation. The last clue of a round moves to the round-end vote, or to final
// voting after the last round.
func (s *Session) SubmitClue(nickname, text string) (Transition, error) {
	if s.phase != PhaseClueRound {
		return Transition{}, domain.New(domain.CodeWrongPhase, "Not clue giving phase.")
	}
	if nickname != s.CurrentTurn() {
		return Transition{}, domain.ErrNotYourTurn
	}
	if _, done := s.Clue(nickname, s.round); done {
		return Transition{}, domain.Newf(domain.CodeAlreadySubmitted, "Already submitted clue for round %d.", s.round)
	}
	clue := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(clue); n == 0 || n > MaxClueLength {
		return Transition{}, domain.ErrInvalidClue
	}

	t := s.transition()
	s.clues[nickname][s.round-1] = clue
	s.turnIndex++

	if s.turnIndex >= len(s.members) {
		s.turnIndex = 0
		if s.round < RoundLimit {
			s.phase = PhaseRoundEndVote
			s.roundEndVotes = make(map[string]RoundEndChoice, len(s.members))
		} else {
			s.startFinalVoting()
		}
	}
	return s.finish(t)
}

// SubmitRoundEndVote records nickname's continue/vote-now choice. Once every
// member has voted, strictly more next_round votes start the next clue round;
// anything else, ties included, moves to final voting.
func (s *Session) SubmitRoundEndVote(nickname string, choice RoundEndChoice) (Transition, error) {
	if s.phase != PhaseRoundEndVote {
		return Transition{}, domain.New(domain.CodeWrongPhase, "Not round end voting phase.")
	}
	if !s.IsMember(nickname) {
		return Transition{}, domain.ErrNotInRoom
	}
	if !choice.Valid() {
		return Transition{}, domain.ErrInvalidChoice
	}
	if _, voted := s.roundEndVotes[nickname]; voted {
		return Transition{}, domain.ErrAlreadyVoted
	}

	t := s.transition()
	s.roundEndVotes[nickname] = choice
	if len(s.roundEndVotes) < len(s.members) {
		return s.finish(t)
	}

	next, now := s.roundEndTally()
	s.roundEndVotes = nil
	if next > now {
		s.round++
		s.phase = PhaseClueRound
		s.turnIndex = 0
	} else {
		s.startFinalVoting()
	}
	return s.finish(t)
}

// SubmitVote records voter's accusation. The last vote computes the results
// and moves to the reveal.
func (s *Session) SubmitVote(voter, accused string) (Transition, error) {
	if s.phase != PhaseFinalVoting {
		return Transition{}, domain.New(domain.CodeWrongPhase, "Cannot vote now.")
	}
	if !s.IsMember(voter) {
		return Transition{}, domain.ErrNotInRoom
	}
	if _, voted := s.finalVotes[voter]; voted {
		return Transition{}, domain.ErrAlreadyVoted
	}
	if !s.IsMember(accused) {
		return Transition{}, domain.ErrInvalidTarget
	}

	t := s.transition()
	s.finalVotes[voter] = accused
	if len(s.finalVotes) >= len(s.members) {
		res := ComputeResults(s.finalVotes, s.impostors)
		s.results = &res
		s.phase = PhaseReveal
	}
	return s.finish(t)
}

func (s *Session) startFinalVoting() {
	s.phase = PhaseFinalVoting
	s.finalVotes = make(map[string]string, len(s.members))
}

func (s *Session) roundEndTally() (next, now int) {
	for _, c := range s.roundEndVotes {
		switch c {
		case ChoiceNextRound:
			next++
		case ChoiceVoteNow:
			now++
		}
	}
	return next, now
}

func (s *Session) transition() Transition {
	return Transition{From: s.phase, FromRound: s.round}
}

// finish completes t with the current phase and rejects phase changes that
// have no edge in the state machine.
func (s *Session) finish(t Transition) (Transition, error) {
	t.To = s.phase
	t.ToRound = s.round
	if t.From != t.To && !t.From.CanTransitionTo(t.To) {
		return t, fmt.Errorf("illegal phase transition %s -> %s", t.From, t.To)
	}
	return t, nil
}
