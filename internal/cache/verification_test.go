package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := GenerateVerificationCode()
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q is not numeric", code)
		}
		seen[code] = struct{}{}
	}
	// 100 draws from a million values should essentially never all collide.
	assert.Greater(t, len(seen), 90)
}
