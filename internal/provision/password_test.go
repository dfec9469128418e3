package provision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerator_Generate(t *testing.T) {
	g := Generator{Length: 10, Cost: bcrypt.MinCost}

	plain, hash, err := g.Generate()
	require.NoError(t, err)

	assert.Len(t, plain, 10)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)))
}

func TestGenerator_CharacterClasses(t *testing.T) {
	g := Generator{Length: 8, Cost: bcrypt.MinCost}

	for i := 0; i < 20; i++ {
		plain, _, err := g.Generate()
		require.NoError(t, err)

		assert.True(t, strings.ContainsAny(plain, lowerChars), "missing lowercase: %q", plain)
		assert.True(t, strings.ContainsAny(plain, upperChars), "missing uppercase: %q", plain)
		assert.True(t, strings.ContainsAny(plain, digitChars), "missing digit: %q", plain)

		// ambiguous glyphs never appear
		assert.False(t, strings.ContainsAny(plain, "0O1lI"), "ambiguous glyph in %q", plain)
	}
}

func TestGenerator_MinimumLength(t *testing.T) {
	g := Generator{Length: 2, Cost: bcrypt.MinCost}

	plain, _, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, plain, minPasswordLength)
}

func TestGenerator_UniquePasswords(t *testing.T) {
	g := Generator{Length: 10, Cost: bcrypt.MinCost}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		plain, _, err := g.Generate()
		require.NoError(t, err)
		assert.False(t, seen[plain], "password repeated: %q", plain)
		seen[plain] = true
	}
}
