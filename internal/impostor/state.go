package impostor

import (
	"maps"
	"slices"
)

// State is the public view of a session broadcast to the whole room. It never
// carries the secret word.
type State struct {
	Mode                string              `json:"mode"`
	Phase               Phase               `json:"phase"`
	CurrentRound        int                 `json:"currentRound"`
	RoundLimit          int                 `json:"roundLimit"`
	Category            string              `json:"category"`
	TurnOrder           []string            `json:"turnOrder"`
	CurrentTurnNickname string              `json:"currentTurnNickname,omitempty"`
	Clues               map[string][]string `json:"clues"`
	RoundEndVotes       *RoundEndTally      `json:"roundEndVotes,omitempty"`
	Voters              []string            `json:"voters,omitempty"`
	Votes               map[string]string   `json:"votes,omitempty"`
	Results             *Results            `json:"results,omitempty"`
}

type RoundEndTally struct {
	NextRound int      `json:"nextRound"`
	VoteNow   int      `json:"voteNow"`
	Voters    []string `json:"voters"`
}

// Snapshot returns the public state. Who voted is visible during final
// voting; who they voted for only after the reveal.
func (s *Session) Snapshot() State {
	st := State{
		Mode:                s.mode,
		Phase:               s.phase,
		CurrentRound:        s.round,
		RoundLimit:          RoundLimit,
		Category:            s.category,
		TurnOrder:           slices.Clone(s.turnOrder),
		CurrentTurnNickname: s.CurrentTurn(),
		Clues:               s.visibleClues(),
	}

	switch s.phase {
	case PhaseCountdown, PhaseClueRound:
	case PhaseRoundEndVote:
		next, now := s.roundEndTally()
		st.RoundEndVotes = &RoundEndTally{
			NextRound: next,
			VoteNow:   now,
			Voters:    sortedKeys(s.roundEndVotes),
		}
	case PhaseFinalVoting:
		st.Voters = sortedKeys(s.finalVotes)
	case PhaseReveal:
		st.Voters = sortedKeys(s.finalVotes)
		st.Votes = maps.Clone(s.finalVotes)
		st.Results = s.results
	}
	return st
}

// visibleClues trims every member's slots to the rounds played so far.
func (s *Session) visibleClues() map[string][]string {
	out := make(map[string][]string, len(s.clues))
	for nickname, slots := range s.clues {
		out[nickname] = slices.Clone(slots[:min(s.round, len(slots))])
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
