package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", digest)

	ok, err := h.Verify("secret123", digest)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("wrong", digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("secret123")
	require.NoError(t, err)
	b, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHasher_HashEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewHasher(bcrypt.MinCost).Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHasher_VerifyLegacyDigest(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	legacy := LegacyDigest("secret123")
	require.Len(t, legacy, 64)
	require.Equal(t, "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4", legacy)

	ok, err := h.Verify("secret123", legacy)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("secret124", legacy)
	require.NoError(t, err)
	require.False(t, ok)

	require.True(t, h.NeedsRehash(legacy))
}

func TestHasher_VerifyEmptyInputs(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	ok, err := h.Verify("", "x")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = h.Verify("x", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasher_VerifyMalformedDigest(t *testing.T) {
	t.Parallel()

	ok, err := NewHasher(bcrypt.MinCost).Verify("secret123", "not-a-hash")
	require.Error(t, err)
	require.False(t, ok)
}

func TestHasher_NeedsRehash(t *testing.T) {
	t.Parallel()

	low := NewHasher(bcrypt.MinCost)
	digest, err := low.Hash("secret123")
	require.NoError(t, err)

	require.False(t, low.NeedsRehash(digest))
	require.True(t, NewHasher(bcrypt.MinCost+1).NeedsRehash(digest))
	require.True(t, low.NeedsRehash("garbage"))
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	require.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
}
