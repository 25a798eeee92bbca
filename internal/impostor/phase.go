package impostor

import "fmt"

// Phase is the session's position in the round lifecycle. The clue round
// number is carried separately on the session.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseClueRound
	PhaseRoundEndVote
	PhaseFinalVoting
	PhaseReveal
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseClueRound:
		return "clue_giving"
	case PhaseRoundEndVote:
		return "round_end_vote"
	case PhaseFinalVoting:
		return "voting"
	case PhaseReveal:
		return "reveal"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CanTransitionTo reports whether the state machine has an edge from p to
// target. Leaving a session (back to the lobby) is not a phase edge.
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseCountdown:
		return target == PhaseClueRound
	case PhaseClueRound:
		return target == PhaseRoundEndVote || target == PhaseFinalVoting
	case PhaseRoundEndVote:
		return target == PhaseClueRound || target == PhaseFinalVoting
	case PhaseFinalVoting:
		return target == PhaseReveal
	case PhaseReveal:
		return false
	default:
		return false
	}
}

type RoundEndChoice string

const (
	ChoiceNextRound RoundEndChoice = "next_round"
	ChoiceVoteNow   RoundEndChoice = "vote_now"
)

func (c RoundEndChoice) Valid() bool {
	return c == ChoiceNextRound || c == ChoiceVoteNow
}

type Winner string

const (
	WinnerPlayers  Winner = "players"
	WinnerImpostor Winner = "impostor"
)

type Role string

const (
	RoleImpostor Role = "impostor"
	RoleInnocent Role = "innocent"
)
