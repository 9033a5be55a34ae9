package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewHasher_Cost(t *testing.T) {
	h, err := NewHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, h.cost)

	_, err = NewHasher(3)
	assert.Error(t, err)

	_, err = NewHasher(32)
	assert.Error(t, err)
}

func TestHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", digest)

	ok, err := h.Verify("s3cret-pass", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("s3cret-pasS", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltedDigests(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := newTestHasher(t)

	ok, err := h.Verify("anything", "not-a-bcrypt-digest")
	assert.False(t, ok)
	assert.Error(t, err)
}
