package game

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields the randomness battle resolution consumes. The engine
// takes it as an interface so tests can script rolls.
type Source interface {
	// D6 returns a uniform integer in [1,6].
	D6() int
	// Chance reports true with probability p.
	Chance(p float64) bool
	// Pick returns a uniform integer in [0,n). n must be positive.
	Pick(n int) int
}

// CryptoSource draws from crypto/rand. Plenty for a game; no seeding,
// no reproducibility.
type CryptoSource struct{}

func (CryptoSource) D6() int { return int(randUint64()%6) + 1 }

func (CryptoSource) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	// 53 bits is enough mantissa for a uniform float in [0,1).
	f := float64(randUint64()>>11) / (1 << 53)
	return f < p
}

func (CryptoSource) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return int(randUint64() % uint64(n))
}

func randUint64() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
