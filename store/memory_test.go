package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Roundtrip(t *testing.T) {
	s := NewMemoryStore()
	snap := sampleSnapshot()

	require.NoError(t, s.Save(context.Background(), snap))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	assert.Equal(t, snap.Users[0].Email, got.Users[0].Email)
	require.Len(t, got.Tickets, 1)
	assert.True(t, snap.Tickets[0].Price.Equal(got.Tickets[0].Price))
	require.NotNil(t, got.CurrentUser)
	assert.Equal(t, snap.CurrentUser.ID, got.CurrentUser.ID)
}

func TestMemoryStore_SessionKeyRemovedOnLogout(t *testing.T) {
	s := NewMemoryStore()

	snap := sampleSnapshot()
	require.NoError(t, s.Save(context.Background(), snap))

	snap.CurrentUser = nil
	require.NoError(t, s.Save(context.Background(), snap))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.CurrentUser)
}

func TestMemoryStore_EmptyLoad(t *testing.T) {
	got, err := NewMemoryStore().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Users)
	assert.Nil(t, got.CurrentUser)
}

func TestMemoryStore_FailSaves(t *testing.T) {
	s := NewMemoryStore()
	s.FailSaves = assert.AnError

	err := s.Save(context.Background(), sampleSnapshot())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMemoryStore_CorruptDropsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	s.Corrupt(KeyOrders)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Users, "a corrupt key discards the whole snapshot")
}
