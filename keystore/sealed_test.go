package keystore

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSealedOverMem(t *testing.T, passphrase string) (*Sealed, *File) {
	t.Helper()
	inner, err := NewFileFs(afero.NewMemMapFs(), "/data/store.json")
	require.NoError(t, err)

	sealed, err := NewSealed(inner, passphrase)
	require.NoError(t, err)
	return sealed, inner
}

func TestSealedRoundTrip(t *testing.T) {
	sealed, _ := newSealedOverMem(t, "hunter2")
	ctx := context.Background()

	require.NoError(t, sealed.Set(ctx, "token", "super-secret-token"))

	got, err := sealed.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "super-secret-token", got)
}

func TestSealedValueIsNotPlaintextAtRest(t *testing.T) {
	sealed, inner := newSealedOverMem(t, "hunter2")
	ctx := context.Background()

	require.NoError(t, sealed.Set(ctx, "token", "super-secret-token"))

	raw, err := inner.Get(ctx, "token")
	require.NoError(t, err)
	assert.NotContains(t, raw, "super-secret-token")
}

func TestSealedWrongPassphrase(t *testing.T) {
	inner, err := NewFileFs(afero.NewMemMapFs(), "/data/store.json")
	require.NoError(t, err)
	ctx := context.Background()

	first, err := NewSealed(inner, "correct horse")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "token", "value"))

	second, err := NewSealed(inner, "battery staple")
	require.NoError(t, err)

	_, err = second.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSealBroken)
}

func TestSealedTamperedValue(t *testing.T) {
	sealed, inner := newSealedOverMem(t, "hunter2")
	ctx := context.Background()

	require.NoError(t, sealed.Set(ctx, "token", "value"))

	stored, err := inner.Get(ctx, "token")
	require.NoError(t, err)
	flipped := "B"
	if stored[0] == 'B' {
		flipped = "C"
	}
	require.NoError(t, inner.Set(ctx, "token", flipped+stored[1:]))

	_, err = sealed.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSealBroken)
}

func TestSealedMissingKeyPassesThrough(t *testing.T) {
	sealed, _ := newSealedOverMem(t, "hunter2")

	_, err := sealed.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSealedRequiresPassphrase(t *testing.T) {
	inner, err := NewFileFs(afero.NewMemMapFs(), "/data/store.json")
	require.NoError(t, err)

	_, err = NewSealed(inner, "")
	assert.Error(t, err)
}
