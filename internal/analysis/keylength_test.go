package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatedDistances(t *testing.T) {
	d, err := RepeatedDistances("ABCXABCYABC", 3, 20)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, d)

	d, err = RepeatedDistances("ABCDEFG", 3, 20)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestRepeatedDistancesLengthBound(t *testing.T) {
	// Lengths above len/2 are never scanned.
	d, err := RepeatedDistances("ABAB", 3, 20)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestKasiskiSimpleRepeat(t *testing.T) {
	res, err := EstimateKeyLengthKasiski("ABCXABCYABC", 3, 20)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 4, res.KeyLength)
	assert.Equal(t, []GCDVote{{Length: 4, Count: 1}}, res.Votes)
}

func TestKasiskiVoteTieKeepsFirstGCD(t *testing.T) {
	// Distances 6, 10 and 9 give gcd 2 then gcd 3, one vote each.
	res, err := EstimateKeyLengthKasiski("ABCDEFABCQRSTUVWXYZQRSKLMXYZ", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 10, 9}, res.Distances)
	assert.Equal(t, []GCDVote{{Length: 2, Count: 1}, {Length: 3, Count: 1}}, res.Votes)
	assert.True(t, res.Found)
	assert.Equal(t, 2, res.KeyLength)
}

func TestKasiskiInconclusive(t *testing.T) {
	res, err := EstimateKeyLengthKasiski("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 3, 20)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 0, res.KeyLength)

	// A single distance gives no pair to vote with.
	res, err = EstimateKeyLengthKasiski("ABCXABC", 3, 20)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Len(t, res.Distances, 1)
}

func TestKasiskiInvalidRange(t *testing.T) {
	_, err := EstimateKeyLengthKasiski("ABC", 0, 5)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = EstimateKeyLengthKasiski("ABC", 5, 4)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestKasiskiFrenchText(t *testing.T) {
	cases := map[string]int{"CLE": 3, "LEMON": 5, "CHIFFRE": 7}
	for key, want := range cases {
		cipher, err := EncryptVigenere(frenchPassage, key)
		require.NoError(t, err)
		res, err := EstimateKeyLengthKasiski(cipher, DefaultKasiskiMin, DefaultKasiskiMax)
		require.NoError(t, err)
		assert.True(t, res.Found, key)
		assert.Equal(t, want, res.KeyLength, key)
	}
}

func TestIndexOfCoincidence(t *testing.T) {
	assert.Equal(t, 0.0, IndexOfCoincidence(""))
	assert.Equal(t, 0.0, IndexOfCoincidence("A"))
	assert.Equal(t, 1.0, IndexOfCoincidence(strings.Repeat("A", 50)))
	assert.Equal(t, 0.0, IndexOfCoincidence("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))

	alphabet := strings.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 40)
	assert.InDelta(t, 39.0/1039.0, IndexOfCoincidence(alphabet), 1e-12)
}

func TestIndexOfCoincidenceRange(t *testing.T) {
	for _, s := range []string{"AB", "AAB", frenchPassage} {
		ic := IndexOfCoincidence(s)
		assert.GreaterOrEqual(t, ic, 0.0)
		assert.LessOrEqual(t, ic, 1.0)
	}
}

func TestCoincidenceFrenchText(t *testing.T) {
	cases := map[string]int{"CLE": 3, "KEY": 3, "LEMON": 5, "CHIFFRE": 7}
	for key, want := range cases {
		cipher, err := EncryptVigenere(frenchPassage, key)
		require.NoError(t, err)
		res, err := EstimateKeyLengthIC(cipher, DefaultMaxKeyLength, french().TargetIC)
		require.NoError(t, err)
		// Multiples of the key length look just as monoalphabetic.
		assert.Zero(t, res.KeyLength%want, "key %s estimated %d", key, res.KeyLength)
		assert.NotEmpty(t, res.Candidates)
	}
}

func TestCoincidenceCandidateBound(t *testing.T) {
	res, err := EstimateKeyLengthIC("ABCDEFGHIJ", 20, 0.074)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 5)
	assert.Equal(t, 5, res.Candidates[len(res.Candidates)-1].Length)
}

func TestCoincidenceDefaultsToOne(t *testing.T) {
	res, err := EstimateKeyLengthIC("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 20, 0.074)
	require.NoError(t, err)
	assert.Equal(t, 1, res.KeyLength)

	res, err = EstimateKeyLengthIC("A", 20, 0.074)
	require.NoError(t, err)
	assert.Equal(t, 1, res.KeyLength)
	assert.Empty(t, res.Candidates)
}

func TestCoincidenceInvalidMax(t *testing.T) {
	_, err := EstimateKeyLengthIC("ABCDEF", 0, 0.074)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
