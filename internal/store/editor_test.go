package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/scout-profile/internal/profile"
)

func TestEditorApply(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clubID := uuid.New()
	editor := NewEditor(s, zaptest.NewLogger(t), 3)

	rec, err := editor.Apply(ctx, clubID, &profile.Patch{
		Identity: &profile.IdentityPatch{Name: profile.Some("Riverside FC")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, "Riverside FC", rec.Profile.Identity.Name)

	rec, err = editor.Apply(ctx, clubID, &profile.Patch{
		Finances: &profile.FinancesPatch{TransferBudget: profile.Some(3_000_000.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)
	assert.Equal(t, "Riverside FC", rec.Profile.Identity.Name)
	assert.Equal(t, 3_000_000.0, rec.Profile.Finances.TransferBudget)
}

func TestEditorRejectsOutOfRangeValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clubID := uuid.New()
	editor := NewEditor(s, nil, 3)

	_, err := editor.Apply(ctx, clubID, &profile.Patch{
		Finances: &profile.FinancesPatch{AgentFeeCeilingPct: profile.Some(150.0)},
	})
	var vErr *profile.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = s.Load(ctx, clubID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditorNeverStoresOutOfSetEnum(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clubID := uuid.New()

	patch, err := profile.DecodePatch([]byte(`{"identity":{"tier":"bogus","league":"Serie B"}}`))
	require.NoError(t, err)

	rec, err := NewEditor(s, nil, 3).Apply(ctx, clubID, patch)
	require.NoError(t, err)
	assert.Equal(t, profile.Default().Identity.Tier, rec.Profile.Identity.Tier)
	assert.Equal(t, "Serie B", rec.Profile.Identity.League)
}

// conflictingStore reports a conflict for the first n saves.
type conflictingStore struct {
	*MemoryStore
	mu        sync.Mutex
	conflicts int
}

func (s *conflictingStore) Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error) {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return nil, ErrConflict
	}
	s.mu.Unlock()
	return s.MemoryStore.Save(ctx, clubID, p, expectedVersion)
}

func TestEditorRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	clubID := uuid.New()
	patch := &profile.Patch{Identity: &profile.IdentityPatch{League: profile.Some("Eredivisie")}}

	s := &conflictingStore{MemoryStore: NewMemoryStore(), conflicts: 2}
	rec, err := NewEditor(s, nil, 2).Apply(ctx, clubID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Eredivisie", rec.Profile.Identity.League)

	s = &conflictingStore{MemoryStore: NewMemoryStore(), conflicts: 3}
	_, err = NewEditor(s, nil, 2).Apply(ctx, clubID, patch)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEditorSerializesConcurrentEdits(t *testing.T) {
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for name, s := range map[string]Store{"memory": NewMemoryStore(), "file": files} {
		t.Run(name, func(t *testing.T) {
			assertConcurrentEditsKept(t, s, uuid.New())
		})
	}
}

// assertConcurrentEditsKept applies one patch per field from separate
// goroutines and checks that none of them was lost.
func assertConcurrentEditsKept(t *testing.T, s Store, clubID uuid.UUID) {
	t.Helper()

	patches := []*profile.Patch{
		{Identity: &profile.IdentityPatch{Name: profile.Some("Riverside FC")}},
		{Identity: &profile.IdentityPatch{Country: profile.Some("England")}},
		{Identity: &profile.IdentityPatch{League: profile.Some("Championship")}},
		{Identity: &profile.IdentityPatch{FoundedYear: profile.Some(1887)}},
		{Finances: &profile.FinancesPatch{TransferBudget: profile.Some(5_000_000.0)}},
		{Finances: &profile.FinancesPatch{WageBudgetWeekly: profile.Some(40_000.0)}},
		{Recruitment: &profile.RecruitmentPatch{PriorityPositions: profile.Some([]string{"ST"})}},
		{Squad: &profile.SquadPatch{ForeignPlayerLimit: profile.Some(6)}},
	}

	editor := NewEditor(s, nil, len(patches)*2)

	var wg sync.WaitGroup
	errs := make([]error, len(patches))
	for i, patch := range patches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = editor.Apply(context.Background(), clubID, patch)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, fmt.Sprintf("patch %d", i))
	}

	rec, err := s.Load(context.Background(), clubID)
	require.NoError(t, err)
	assert.Equal(t, len(patches), rec.Version)

	got := rec.Profile
	assert.Equal(t, "Riverside FC", got.Identity.Name)
	assert.Equal(t, "England", got.Identity.Country)
	assert.Equal(t, "Championship", got.Identity.League)
	require.NotNil(t, got.Identity.FoundedYear)
	assert.Equal(t, 1887, *got.Identity.FoundedYear)
	assert.Equal(t, 5_000_000.0, got.Finances.TransferBudget)
	assert.Equal(t, 40_000.0, got.Finances.WageBudgetWeekly)
	assert.Equal(t, []string{"ST"}, got.Recruitment.PriorityPositions)
	assert.Equal(t, 6, got.Squad.ForeignPlayerLimit)
}
