package impostor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"impostor-server/internal/impostor"
)

func TestComputeResults(t *testing.T) {
	tests := []struct {
		name      string
		votes     map[string]string
		impostors []string
		want      impostor.Results
	}{
		{
			name:      "single plurality on impostor",
			votes:     map[string]string{"A": "B", "C": "B", "D": "A"},
			impostors: []string{"B"},
			want: impostor.Results{
				VoteCounts:         map[string]int{"B": 2, "A": 1},
				MostVotedNicknames: []string{"B"},
				ImpostorNicknames:  []string{"B"},
				ImpostorCaught:     true,
				Winner:             impostor.WinnerPlayers,
			},
		},
		{
			name:      "tie lets impostor escape",
			votes:     map[string]string{"A": "B", "C": "A"},
			impostors: []string{"B"},
			want: impostor.Results{
				VoteCounts:         map[string]int{"A": 1, "B": 1},
				MostVotedNicknames: []string{"A", "B"},
				ImpostorNicknames:  []string{"B"},
				ImpostorCaught:     false,
				Winner:             impostor.WinnerImpostor,
			},
		},
		{
			name:      "plurality on innocent",
			votes:     map[string]string{"A": "C", "B": "C", "C": "A"},
			impostors: []string{"B"},
			want: impostor.Results{
				VoteCounts:         map[string]int{"C": 2, "A": 1},
				MostVotedNicknames: []string{"C"},
				ImpostorNicknames:  []string{"B"},
				ImpostorCaught:     false,
				Winner:             impostor.WinnerImpostor,
			},
		},
		{
			name:      "no votes",
			votes:     map[string]string{},
			impostors: []string{"B"},
			want: impostor.Results{
				VoteCounts:         map[string]int{},
				MostVotedNicknames: []string{},
				ImpostorNicknames:  []string{"B"},
				ImpostorCaught:     false,
				Winner:             impostor.WinnerImpostor,
			},
		},
		{
			name:      "either of two impostors counts",
			votes:     map[string]string{"A": "E", "B": "E", "C": "E", "D": "B", "E": "A"},
			impostors: []string{"E", "B"},
			want: impostor.Results{
				VoteCounts:         map[string]int{"E": 3, "B": 1, "A": 1},
				MostVotedNicknames: []string{"E"},
				ImpostorNicknames:  []string{"B", "E"},
				ImpostorCaught:     true,
				Winner:             impostor.WinnerPlayers,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := impostor.ComputeResults(tt.votes, tt.impostors)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputeResults() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
