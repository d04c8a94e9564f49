package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(passcode, name, email string, sponsor int64) *BetEntry {
	return &BetEntry{
		Passcode:   passcode,
		SponsorID:  &sponsor,
		Name:       name,
		Email:      email,
		Spread:     40,
		TargetDate: time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryUniqueness(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Insert(ctx, entry("aaaa-bbbb-cccc", "Alice", "alice@example.com", 1)))

	cases := []struct {
		name string
		e    *BetEntry
		want error
	}{
		{"passcode", entry("aaaa-bbbb-cccc", "Bruno", "bruno@example.com", 2), ErrDuplicatePasscode},
		{"name", entry("dddd-eeee-ffff", "Alice", "bruno@example.com", 2), ErrDuplicateName},
		{"email", entry("dddd-eeee-ffff", "Bruno", "alice@example.com", 2), ErrDuplicateEmail},
		{"sponsor", entry("dddd-eeee-ffff", "Bruno", "bruno@example.com", 1), ErrSponsorTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mem.Insert(ctx, tc.e), tc.want)
		})
	}
	assert.Equal(t, 1, mem.Len())
}

func TestMemoryUpdateBet(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Insert(ctx, entry("aaaa-bbbb-cccc", "Alice", "alice@example.com", 1)))

	target := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, mem.UpdateBet(ctx, "aaaa-bbbb-cccc", 75, target))

	got, err := mem.FindByPasscode(ctx, "aaaa-bbbb-cccc")
	require.NoError(t, err)
	assert.Equal(t, 75, got.Spread)
	assert.True(t, got.TargetDate.Equal(target))

	assert.ErrorIs(t, mem.UpdateBet(ctx, "unknown", 10, target), ErrNotFound)
}

func TestMemoryLookups(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.AddInvitation("gudi-fala", 7)
	require.NoError(t, mem.Insert(ctx, entry("aaaa-bbbb-cccc", "Alice", "alice@example.com", 1)))

	byName, err := mem.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "aaaa-bbbb-cccc", byName.Passcode)

	byEmail, err := mem.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", byEmail.Name)

	_, err = mem.FindByName(ctx, "alice") // a comparação é sensível a caixa
	assert.ErrorIs(t, err, ErrNotFound)

	inv, err := mem.FindInvitation(ctx, "gudi-fala")
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.SponsorID)

	_, err = mem.FindInvitation(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
