package impostor

import "slices"

type Results struct {
	VoteCounts         map[string]int `json:"voteCounts"`
	MostVotedNicknames []string       `json:"mostVotedNicknames"`
	ImpostorNicknames  []string       `json:"impostorNicknames"`
	ImpostorCaught     bool           `json:"impostorWasCaught"`
	Winner             Winner         `json:"winner"`
}

// ComputeResults tallies votes (voter -> accused). The impostors are caught
// only when a single nickname holds the maximum tally and that nickname is an
// impostor. Ties, no votes, or a plurality on an innocent let them escape.
func ComputeResults(votes map[string]string, impostors []string) Results {
	counts := make(map[string]int)
	for _, accused := range votes {
		counts[accused]++
	}

	top := 0
	for _, n := range counts {
		top = max(top, n)
	}

	mostVoted := []string{}
	if top > 0 {
		for nickname, n := range counts {
			if n == top {
				mostVoted = append(mostVoted, nickname)
			}
		}
	}
	slices.Sort(mostVoted)

	sortedImpostors := slices.Clone(impostors)
	slices.Sort(sortedImpostors)

	caught := len(mostVoted) == 1 && slices.Contains(impostors, mostVoted[0])
	winner := WinnerImpostor
	if caught {
		winner = WinnerPlayers
	}

	return Results{
		VoteCounts:         counts,
		MostVotedNicknames: mostVoted,
		ImpostorNicknames:  sortedImpostors,
		ImpostorCaught:     caught,
		Winner:             winner,
	}
}
