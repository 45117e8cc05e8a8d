package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphera/kaia-bot/internal/conversation"
)

func TestStore_SendFlow(t *testing.T) {
	store := conversation.NewStore()
	store.Begin("user-1", conversation.StepAwaitingAddress)

	state, done, err := store.Advance("user-1", "0xRecipient")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, conversation.StepAwaitingAmount, state.Step)
	assert.Equal(t, "0xRecipient", state.Address)

	state, done, err = store.Advance("user-1", "1.5")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "0xRecipient", state.Address)
	assert.Equal(t, "1.5", state.Amount)
}

func TestStore_DonateFlow(t *testing.T) {
	store := conversation.NewStore()
	store.Begin("user-1", conversation.StepAwaitingProjectID)

	state, done, err := store.Advance("user-1", "3")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, conversation.StepAwaitingDonationAmount, state.Step)
	assert.Equal(t, "3", state.ProjectID)

	state, done, err = store.Advance("user-1", "0.5")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "3", state.ProjectID)
	assert.Equal(t, "0.5", state.Amount)
}

func TestStore_BeginReplacesExistingFlow(t *testing.T) {
	store := conversation.NewStore()
	store.Begin("user-1", conversation.StepAwaitingAddress)
	store.Begin("user-1", conversation.StepAwaitingProjectID)

	state, ok := store.Current("user-1")
	require.True(t, ok)
	assert.Equal(t, conversation.StepAwaitingProjectID, state.Step)
	assert.Empty(t, state.Address)
}

func TestStore_AdvanceWithoutFlow(t *testing.T) {
	store := conversation.NewStore()

	_, _, err := store.Advance("user-1", "anything")
	assert.ErrorIs(t, err, conversation.ErrUnknownStep)
}

func TestStore_EndClearsState(t *testing.T) {
	store := conversation.NewStore()
	store.Begin("user-1", conversation.StepAwaitingAddress)
	store.End("user-1")

	_, ok := store.Current("user-1")
	assert.False(t, ok)

	// Ending twice is harmless.
	store.End("user-1")
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	store := conversation.NewStore()
	store.Begin("user-1", conversation.StepAwaitingAddress)

	state, ok := store.Current("user-1")
	require.True(t, ok)
	state.Address = "mutated"

	fresh, ok := store.Current("user-1")
	require.True(t, ok)
	assert.Empty(t, fresh.Address)
}
