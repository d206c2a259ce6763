package game

import "testing"

func TestCryptoSourceD6Range(t *testing.T) {
	var src CryptoSource
	for i := 0; i < 1000; i++ {
		v := src.D6()
		if v < 1 || v > 6 {
			t.Fatalf("D6() = %d, want 1..6", v)
		}
	}
}

func TestCryptoSourceChanceExtremes(t *testing.T) {
	var src CryptoSource
	if src.Chance(0) {
		t.Error("Chance(0) must never hit")
	}
	if !src.Chance(1) {
		t.Error("Chance(1) must always hit")
	}
}

func TestCryptoSourcePickRange(t *testing.T) {
	var src CryptoSource
	if got := src.Pick(1); got != 0 {
		t.Errorf("Pick(1) = %d, want 0", got)
	}
	for i := 0; i < 1000; i++ {
		if v := src.Pick(3); v < 0 || v > 2 {
			t.Fatalf("Pick(3) = %d, want 0..2", v)
		}
	}
}
