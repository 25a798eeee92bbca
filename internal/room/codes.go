package room

import (
	"math/rand/v2"
	"strings"

	"impostor-server/internal/domain"
)

const (
	GeneratedCodeLength = 4
	MinCodeLength       = 4
	MaxCodeLength       = 10
)

// GenerateCode returns a random code of uppercase letters that inUse
// reports as free.
func GenerateCode(r *rand.Rand, inUse func(code string) bool) string {
	for {
		code := make([]byte, GeneratedCodeLength)
		for i := range code {
			code[i] = 'A' + byte(r.IntN(26))
		}
		if !inUse(string(code)) {
			return string(code)
		}
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks an already normalized code.
func ValidateCode(code string) error {
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return domain.ErrRoomCodeInvalid
	}
	for _, ch := range code {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return domain.ErrRoomCodeInvalid
		}
	}
	return nil
}
