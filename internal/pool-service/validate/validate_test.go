package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
)

var (
	campaignStart = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	campaignEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

// failingDir simula indisponibilidade do store nas checagens de unicidade
type failingDir struct{}

func (failingDir) FindByName(context.Context, string) (*repo.BetEntry, error) {
	return nil, errors.New("store down")
}

func (failingDir) FindByEmail(context.Context, string) (*repo.BetEntry, error) {
	return nil, errors.New("store down")
}

func newPipeline(t *testing.T) (*Pipeline, *repo.Memory) {
	t.Helper()
	mem := repo.NewMemory()
	return New(mem, campaignStart, campaignEnd), mem
}

func seedEntry(t *testing.T, mem *repo.Memory, name, email string) {
	t.Helper()
	sponsor := int64(99)
	require.NoError(t, mem.Insert(context.Background(), &repo.BetEntry{
		Passcode:   "gito-woha-lemu",
		SponsorID:  &sponsor,
		Name:       name,
		Email:      email,
		Spread:     50,
		TargetDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func TestValidateNameSyntax(t *testing.T) {
	p, _ := newPipeline(t)

	cases := []struct {
		name      string
		candidate string
		wantMsgs  []string
	}{
		{"too short", "Al", []string{"at least 3 symbols"}},
		{"too long", "abcdefghijklmnopqrstu", []string{"at most 20 symbols"}},
		{"leading space", " Bob", []string{"whitespace"}},
		{"trailing space", "Bob ", []string{"whitespace"}},
		{"forbidden symbol", "Bob!", []string{"forbidden symbols: !"}},
		{"forbidden dedup ordered", "B?b!?fine!", []string{"forbidden symbols: ? !"}},
		{"short and forbidden", "A!", []string{"forbidden symbols: !", "at least 3 symbols"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outs := p.ValidateName(context.Background(), tc.candidate)
			_, issues := Collect(outs)
			require.Len(t, issues, len(tc.wantMsgs))
			for i, want := range tc.wantMsgs {
				assert.Contains(t, issues[i], want)
			}
		})
	}
}

func TestValidateNameAccepts(t *testing.T) {
	p, _ := newPipeline(t)

	for _, candidate := range []string{"Bob", "Jörg Müller", "Ana-Luíza d'Ávila", "user_7.b", "exactly twenty chars"} {
		outs := p.ValidateName(context.Background(), candidate)
		errs, issues := Collect(outs)
		assert.Empty(t, errs, "candidate %q", candidate)
		assert.Empty(t, issues, "candidate %q", candidate)
	}
}

func TestValidateNameUniqueness(t *testing.T) {
	p, mem := newPipeline(t)
	seedEntry(t, mem, "Alice", "alice@example.com")

	_, issues := Collect(p.ValidateName(context.Background(), "Alice"))
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `"Alice"`)

	errs, issues := Collect(p.ValidateName(context.Background(), "Bruno"))
	assert.Empty(t, errs)
	assert.Empty(t, issues)
}

func TestValidateNameStoreFailure(t *testing.T) {
	p := New(failingDir{}, campaignStart, campaignEnd)

	errs, issues := Collect(p.ValidateName(context.Background(), "Alice"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "cannot verify")
	assert.Empty(t, issues)
}

func TestValidateNameSkipsUniquenessOnSyntaxIssue(t *testing.T) {
	// Com problema sintático, a unicidade nem é consultada:
	// o store indisponível não pode virar erro aqui
	p := New(failingDir{}, campaignStart, campaignEnd)

	errs, issues := Collect(p.ValidateName(context.Background(), "A!"))
	assert.Empty(t, errs)
	assert.NotEmpty(t, issues)
}

func TestValidateEmail(t *testing.T) {
	p, mem := newPipeline(t)
	seedEntry(t, mem, "Alice", "alice@example.com")

	cases := []struct {
		name      string
		candidate string
		wantIssue string
	}{
		{"valid", "bruno@example.com", ""},
		{"no at sign", "bruno.example.com", "not a valid email"},
		{"display name form", "Bruno <bruno@example.com>", "not a valid email"},
		{"empty", "", "not a valid email"},
		{"duplicate", "alice@example.com", "already registered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, issues := Collect(p.ValidateEmail(context.Background(), tc.candidate))
			assert.Empty(t, errs)
			if tc.wantIssue == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Contains(t, issues[0], tc.wantIssue)
		})
	}
}

func TestValidateConfidence(t *testing.T) {
	p, _ := newPipeline(t)

	for _, spread := range []int{0, 1, 50, 100} {
		assert.Equal(t, LevelOK, p.ValidateConfidence(spread).Level, "spread %d", spread)
	}
	for _, spread := range []int{-1, 101, 150} {
		out := p.ValidateConfidence(spread)
		require.Equal(t, LevelIssue, out.Level, "spread %d", spread)
		assert.Contains(t, out.Message, "between 0 and 100")
	}
}

func TestValidateDate(t *testing.T) {
	p, _ := newPipeline(t)

	cases := []struct {
		name             string
		year, month, day int
		wantIssue        string
	}{
		{"window start", 2022, 1, 1, ""},
		{"window end", 2024, 12, 31, ""},
		{"leap day", 2024, 2, 29, ""},
		{"before window", 2021, 12, 31, "must fall between"},
		{"after window", 2025, 1, 1, "must fall between"},
		{"not a date", 2023, 2, 30, "not a calendar date"},
		{"month out of range", 2023, 13, 1, "not a calendar date"},
		{"day zero", 2023, 6, 0, "not a calendar date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := p.ValidateDate(tc.year, tc.month, tc.day)
			if tc.wantIssue == "" {
				assert.Equal(t, LevelOK, out.Level)
				return
			}
			require.Equal(t, LevelIssue, out.Level)
			assert.Contains(t, out.Message, tc.wantIssue)
		})
	}
}

func TestCollectKeepsOrder(t *testing.T) {
	errs, issues := Collect([]Outcome{
		Issuef("first"),
		Errf("boom"),
		Ok(),
		Issuef("second"),
	})
	assert.Equal(t, []string{"boom"}, errs)
	assert.Equal(t, []string{"first", "second"}, issues)
}
