// Package daily picks a deterministic goal word per calendar date so the
// solver can replay "today's puzzle" against itself.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate reads a YYYY-MM-DD key; an empty key means today.
func ParseDate(key string, now time.Time) (time.Time, error) {
	if key == "" {
		return now.UTC(), nil
	}
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: bad date %q: %w", key, err)
	}
	return t, nil
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus source
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
