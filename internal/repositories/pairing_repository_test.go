package repositories_test

import (
	"testing"
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePair_SymmetricRows(t *testing.T) {
	db := setupTestDB(t)
	pairings := repositories.NewPairingRepository(db)

	require.NoError(t, pairings.CreatePair(1, 2, time.Now()))

	partner, ok, err := pairings.PartnerOf(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), partner)

	partner, ok, err = pairings.PartnerOf(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), partner)
}

func TestDeletePair_RemovesBothDirections(t *testing.T) {
	db := setupTestDB(t)
	pairings := repositories.NewPairingRepository(db)

	require.NoError(t, pairings.CreatePair(1, 2, time.Now()))

	partner, existed, err := pairings.DeletePair(1)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, int64(2), partner)

	_, ok, err := pairings.PartnerOf(1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = pairings.PartnerOf(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePair_NoPairingIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	pairings := repositories.NewPairingRepository(db)

	_, existed, err := pairings.DeletePair(42)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCreatePair_ReplacesStalePairings(t *testing.T) {
	db := setupTestDB(t)
	pairings := repositories.NewPairingRepository(db)

	require.NoError(t, pairings.CreatePair(1, 2, time.Now()))
	// user 1 re-matches with 3; the old link must be gone entirely
	require.NoError(t, pairings.CreatePair(1, 3, time.Now()))

	partner, ok, err := pairings.PartnerOf(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), partner)

	_, ok, err = pairings.PartnerOf(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAll_ReturnsEveryDirectionalRow(t *testing.T) {
	db := setupTestDB(t)
	pairings := repositories.NewPairingRepository(db)

	require.NoError(t, pairings.CreatePair(1, 2, time.Now()))
	require.NoError(t, pairings.CreatePair(3, 4, time.Now()))

	rows, err := pairings.All()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
