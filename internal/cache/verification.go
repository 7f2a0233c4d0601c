package cache

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
)

// Verification codes live only in Redis under verify:<user_id> with a native
// TTL. There is no in-process copy, so the check works identically on every
// replica and expiry needs no timers.
const VerificationCodeTTL = 10 * time.Minute

// GenerateVerificationCode returns a 6-digit numeric code.
func GenerateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func StoreVerificationCode(ctx context.Context, userID, code string) error {
	return database.Redis.Set(ctx, "verify:"+userID, code, VerificationCodeTTL).Err()
}

// CheckVerificationCode compares and consumes the stored code. A successful
// check deletes the key so a code can be used at most once.
func CheckVerificationCode(ctx context.Context, userID, code string) (bool, error) {
	stored, err := database.Redis.Get(ctx, "verify:"+userID).Result()
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	database.Redis.Del(ctx, "verify:"+userID)
	return true, nil
}
