package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/chiffre/internal/text"
)

func TestCaesarRoundTrip(t *testing.T) {
	inputs := []string{"", "Hello, World!", "zZ aA 09 ~", frenchPassage, "déjà vu"}
	for _, in := range inputs {
		for s := 0; s < 26; s++ {
			shift := Shift(s)
			assert.Equal(t, in, DecryptCaesar(EncryptCaesar(in, shift), shift), "shift %d", s)
		}
	}
}

func TestCaesarPreservesCaseAndPunctuation(t *testing.T) {
	assert.Equal(t, "Khoor, Zruog!", EncryptCaesar("Hello, World!", 3))
	assert.Equal(t, "Hello, World!", DecryptCaesar("Khoor, Zruog!", 3))
	assert.Equal(t, "abc", DecryptCaesar("abc", 26))
}

func TestEagleHasLanded(t *testing.T) {
	const cipher = "WKH HDJOH KDV ODQGHG"
	assert.Equal(t, "WKHHDJOHKDVODQGHG", text.Normalize(cipher))

	// H is the most frequent ciphertext letter; the French peak is E.
	res := AnalyzeCaesar(cipher, french())
	assert.Equal(t, byte('H'), res.MostFrequent)
	assert.Equal(t, Shift(3), res.Shift)
	assert.Equal(t, "THE EAGLE HAS LANDED", DecryptCaesar(cipher, res.Shift))
}

func TestEstimateShiftRecoversShiftOnFrenchText(t *testing.T) {
	for _, s := range []int{0, 3, 13, 25} {
		cipher := text.Normalize(EncryptCaesar(frenchPassage, Shift(s)))
		assert.Equal(t, Shift(s), EstimateShift(cipher, french()), "shift %d", s)
	}
}

func TestEstimateShiftEmptyText(t *testing.T) {
	assert.Equal(t, Shift(0), EstimateShift("", french()))
	res := AnalyzeCaesar("1234 !!", french())
	assert.False(t, res.HasObserved)
	assert.Equal(t, 0, res.Letters)
	assert.Equal(t, Shift(0), res.Shift)
}

func TestAnalyzeCaesarObservedProfile(t *testing.T) {
	res := AnalyzeCaesar("aab", french())
	require.True(t, res.HasObserved)
	assert.InDelta(t, 2.0/3.0, res.Observed[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, res.Observed[1], 1e-12)
	assert.InDelta(t, 1.0, res.Observed.Sum(), 1e-12)
}

func TestNewShift(t *testing.T) {
	s, err := NewShift(25)
	require.NoError(t, err)
	assert.Equal(t, Shift(25), s)

	for _, bad := range []int{-1, 26, 100} {
		_, err := NewShift(bad)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "shift %d", bad)
	}
}

func TestShiftArithmetic(t *testing.T) {
	assert.Equal(t, Shift(1), Shift(25).Add(2))
	assert.Equal(t, Shift(24), Shift(0).Add(-2))
	assert.Equal(t, byte('D'), Shift(3).Letter())
}

func TestAlternatives(t *testing.T) {
	alts := Alternatives("Khoor", 24, 3)
	require.Len(t, alts, 3)
	assert.Equal(t, Shift(25), alts[0].Shift)
	assert.Equal(t, Shift(0), alts[1].Shift)
	assert.Equal(t, "Khoor", alts[1].Plaintext)
	assert.Equal(t, Shift(1), alts[2].Shift)

	assert.Len(t, Alternatives("x", 0, 40), 25)
	assert.Nil(t, Alternatives("x", 0, 0))
}

func TestRankShiftsPutsTrueShiftFirst(t *testing.T) {
	cipher := EncryptCaesar(frenchPassage, 3)
	ranked := RankShifts(cipher, french().Profile)
	require.Len(t, ranked, 26)
	assert.Equal(t, Shift(3), ranked[0].Shift)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].ChiSquared, ranked[i].ChiSquared)
	}
}
