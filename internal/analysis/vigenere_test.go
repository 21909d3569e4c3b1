package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/chiffre/internal/text"
)

func TestVigenereKnownVector(t *testing.T) {
	cipher, err := EncryptVigenere("attack at dawn", "lemon")
	require.NoError(t, err)
	assert.Equal(t, "LXFOPVEFRNHR", cipher)

	plain, err := DecryptVigenere(cipher, "LEMON")
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN", plain)
}

func TestVigenereRoundTrip(t *testing.T) {
	for _, key := range []string{"A", "CLE", "chiffre", "Le Monde!"} {
		cipher, err := EncryptVigenere(frenchPassage, key)
		require.NoError(t, err)
		plain, err := DecryptVigenere(cipher, key)
		require.NoError(t, err)
		assert.Equal(t, text.Normalize(frenchPassage), plain, "key %q", key)
	}
}

func TestVigenereSingleLetterKeyIsCaesar(t *testing.T) {
	cipher, err := EncryptVigenere("Hello World", "D")
	require.NoError(t, err)
	assert.Equal(t, text.Normalize(EncryptCaesar("Hello World", 3)), cipher)
}

func TestVigenereEmptyKey(t *testing.T) {
	for _, key := range []string{"", "123", " - "} {
		_, err := EncryptVigenere("abc", key)
		assert.True(t, errors.Is(err, ErrEmptyKey), "key %q", key)
		_, err = DecryptVigenere("abc", key)
		assert.True(t, errors.Is(err, ErrEmptyKey), "key %q", key)
	}
}

func TestVigenereEmptyText(t *testing.T) {
	out, err := DecryptVigenere("!!", "KEY")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRecoverKeyFrenchText(t *testing.T) {
	plain := text.Normalize(frenchPassage)
	for _, key := range []string{"CLE", "KEY", "LEMON", "CHIFFRE"} {
		cipher, err := EncryptVigenere(plain, key)
		require.NoError(t, err)
		got, err := RecoverKey(cipher, len(key), french().Profile)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}
}

func TestRecoverKeyColumnsReportsScores(t *testing.T) {
	cipher, err := EncryptVigenere(frenchPassage, "CLE")
	require.NoError(t, err)
	cols, err := RecoverKeyColumns(cipher, 3, french().Profile)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	total := 0
	for i, c := range cols {
		assert.Equal(t, i, c.Column)
		assert.Equal(t, "CLE"[i], c.Letter)
		assert.GreaterOrEqual(t, c.ChiSquared, 0.0)
		total += c.Length
	}
	assert.Equal(t, len(cipher), total)
}

func TestRecoverKeyInvalidLength(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := RecoverKey("ABCDEF", n, french().Profile)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "length %d", n)
	}
}

func TestRecoverKeyLongerThanText(t *testing.T) {
	key, err := RecoverKey("AB", 4, uniformProfile())
	require.NoError(t, err)
	require.Len(t, key, 4)
	// Empty columns fall back to A.
	assert.Equal(t, "AA", key[2:])
}

func TestRecoverKeyLetterTieBreak(t *testing.T) {
	// Every shift scores the same under a uniform profile; the smallest wins.
	assert.Equal(t, byte('A'), RecoverKeyLetter("AB", uniformProfile()))
	assert.Equal(t, byte('A'), RecoverKeyLetter("", french().Profile))
}

func TestChiSquaredScoresMinimumAtTrueShift(t *testing.T) {
	column := text.Normalize(EncryptCaesar(frenchPassage, 7))
	scores := ChiSquaredScores(column, french().Profile)
	for k, s := range scores {
		if k == 7 {
			continue
		}
		assert.Less(t, scores[7], s, "shift %d", k)
	}
}
