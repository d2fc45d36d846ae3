package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type suggestionFixture struct {
	clock       *fixedClock
	cycles      *fakeCycleRepo
	suggestions *fakeSuggestionRepo
	svc         ports.SuggestionService
	cycle       *domain.VotingCycle
}

func newSuggestionFixture(mode domain.VotingMode) *suggestionFixture {
	clock := &fixedClock{now: testNow}
	cycles := newFakeCycleRepo(clock)
	suggestions := newFakeSuggestionRepo(clock)
	cycle := cycles.seed(domain.VotingCycle{
		SuggestionDeadline: testNow.Add(day),
		VotingDeadline:     testNow.Add(2 * day),
		Status:             domain.CycleSuggesting,
		VotingMode:         mode,
	})
	return &suggestionFixture{
		clock:       clock,
		cycles:      cycles,
		suggestions: suggestions,
		svc:         NewSuggestionService(suggestions, cycles, clock),
		cycle:       cycle,
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestSuggestionService_Create(t *testing.T) {
	ctx := context.Background()
	f := newSuggestionFixture(domain.VotingModeApproval)
	member := uuid.New()

	s, err := f.svc.Create(ctx, member, ports.CreateSuggestionInput{
		Title:     "  Book X ",
		Author:    "<b>Jane</b> Doe",
		Year:      intPtr(0),
		PageCount: intPtr(320),
		Link:      strPtr(""),
		MiscInfo:  strPtr("Tom & Jerry <script>alert(1)</script>"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Book X", s.Title)
	assert.Equal(t, "Jane Doe", s.Author)
	assert.Nil(t, s.Year)
	assert.Equal(t, 320, *s.PageCount)
	assert.Nil(t, s.Link)
	require.NotNil(t, s.MiscInfo)
	assert.Equal(t, "Tom & Jerry", *s.MiscInfo)
	assert.Equal(t, f.cycle.ID, s.VotingCycleID)
	assert.Equal(t, member, s.UserID)
}

// member A suggests twice in the same cycle
func TestSuggestionService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newSuggestionFixture(domain.VotingModeApproval)
	member := uuid.New()

	_, err := f.svc.Create(ctx, member, ports.CreateSuggestionInput{Title: "Book X", Author: "A"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, member, ports.CreateSuggestionInput{Title: "Book Y", Author: "B"})
	require.ErrorIs(t, err, domain.ErrDuplicateSuggestion)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestSuggestionService_Create_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("title and author required", func(t *testing.T) {
		f := newSuggestionFixture(domain.VotingModeApproval)
		_, err := f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "<i></i>", Author: "A"})
		require.ErrorIs(t, err, domain.ErrTitleAuthorRequired)
	})

	t.Run("no active cycle", func(t *testing.T) {
		clock := &fixedClock{now: testNow}
		svc := NewSuggestionService(newFakeSuggestionRepo(clock), newFakeCycleRepo(clock), clock)
		_, err := svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A"})
		require.ErrorIs(t, err, domain.ErrNoActiveCycle)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("suggestion deadline passed", func(t *testing.T) {
		f := newSuggestionFixture(domain.VotingModeApproval)
		f.clock.Advance(day + time.Second)
		_, err := f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A"})
		require.ErrorIs(t, err, domain.ErrSuggestionDeadlinePassed)
		assert.Equal(t, domain.KindBusinessLogic, domain.KindOf(err))
	})

	t.Run("voting phase", func(t *testing.T) {
		f := newSuggestionFixture(domain.VotingModeApproval)
		require.NoError(t, f.cycles.UpdateStatus(ctx, f.cycle.ID, domain.CycleVoting))
		f.clock.Advance(day + time.Second)
		_, err := f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A"})
		require.ErrorIs(t, err, domain.ErrNotSuggestingPhase)
		assert.Equal(t, domain.KindBusinessLogic, domain.KindOf(err))
	})

	t.Run("exactly at the deadline is still open", func(t *testing.T) {
		f := newSuggestionFixture(domain.VotingModeApproval)
		f.clock.Advance(day)
		_, err := f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A"})
		require.NoError(t, err)
	})

	t.Run("invalid numbers", func(t *testing.T) {
		f := newSuggestionFixture(domain.VotingModeApproval)
		_, err := f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A", Year: intPtr(900)})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))

		_, err = f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A", PageCount: intPtr(-3)})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))

		_, err = f.svc.Create(ctx, uuid.New(), ports.CreateSuggestionInput{Title: "T", Author: "A", Year: intPtr(testNow.Year() + 6)})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

func TestSuggestionService_Update(t *testing.T) {
	ctx := context.Background()
	f := newSuggestionFixture(domain.VotingModeApproval)
	owner := uuid.New()

	s, err := f.svc.Create(ctx, owner, ports.CreateSuggestionInput{Title: "Old", Author: "Author", Year: intPtr(1999)})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, owner, s.ID.String(), ports.UpdateSuggestionInput{Title: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Author", updated.Author)
	assert.Equal(t, 1999, *updated.Year)

	_, err = f.svc.Update(ctx, owner, s.ID.String(), ports.UpdateSuggestionInput{Author: strPtr("  ")})
	require.ErrorIs(t, err, domain.ErrTitleAuthorRequired)

	t.Run("non owner sees not found", func(t *testing.T) {
		_, err := f.svc.Update(ctx, uuid.New(), s.ID.String(), ports.UpdateSuggestionInput{Title: strPtr("Hijack")})
		require.ErrorIs(t, err, domain.ErrSuggestionNotFound)

		_, err = f.svc.Update(ctx, owner, uuid.NewString(), ports.UpdateSuggestionInput{})
		require.ErrorIs(t, err, domain.ErrSuggestionNotFound)

		_, err = f.svc.Update(ctx, owner, "garbage", ports.UpdateSuggestionInput{})
		require.ErrorIs(t, err, domain.ErrSuggestionNotFound)
	})

	t.Run("closed after suggestion deadline", func(t *testing.T) {
		f.clock.Advance(day + time.Minute)
		_, err := f.svc.Update(ctx, owner, s.ID.String(), ports.UpdateSuggestionInput{Title: strPtr("Late")})
		require.ErrorIs(t, err, domain.ErrSuggestionDeadlinePassed)
	})
}

func TestSuggestionService_ListAndGetOwn(t *testing.T) {
	ctx := context.Background()
	f := newSuggestionFixture(domain.VotingModeApproval)
	a, b := uuid.New(), uuid.New()

	first, err := f.svc.Create(ctx, a, ports.CreateSuggestionInput{Title: "First", Author: "A"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, b, ports.CreateSuggestionInput{Title: "Second", Author: "B"})
	require.NoError(t, err)

	list, err := f.svc.ListByCycle(ctx, f.cycle.ID.String())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	own, err := f.svc.GetOwn(ctx, b, f.cycle.ID.String())
	require.NoError(t, err)
	assert.Equal(t, second.ID, own.ID)

	_, err = f.svc.GetOwn(ctx, uuid.New(), f.cycle.ID.String())
	require.ErrorIs(t, err, domain.ErrSuggestionNotFound)

	_, err = f.svc.ListByCycle(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrCycleNotFound)
}
