package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeCycleRepo struct {
	mu            sync.Mutex
	cycles        map[uuid.UUID]*domain.VotingCycle
	order         []uuid.UUID
	statusUpdates int
	updateErr     error
	clock         *fixedClock
}

func newFakeCycleRepo(clock *fixedClock) *fakeCycleRepo {
	return &fakeCycleRepo{cycles: map[uuid.UUID]*domain.VotingCycle{}, clock: clock}
}

func (r *fakeCycleRepo) Create(ctx context.Context, cycle *domain.VotingCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cycles {
		if c.Status != domain.CycleCompleted {
			return domain.ErrActiveCycleExists
		}
	}
	cycle.ID = uuid.New()
	cycle.CreatedAt = r.clock.Now().Add(time.Duration(len(r.order)) * time.Millisecond)
	cycle.UpdatedAt = cycle.CreatedAt
	cp := *cycle
	r.cycles[cycle.ID] = &cp
	r.order = append(r.order, cycle.ID)
	return nil
}

func (r *fakeCycleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return nil, domain.ErrCycleNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCycleRepo) GetActive(ctx context.Context) (*domain.VotingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.cycles[r.order[i]]
		if c.Status != domain.CycleCompleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNoActiveCycle
}

func (r *fakeCycleRepo) GetLatest(ctx context.Context) (*domain.VotingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) == 0 {
		return nil, domain.ErrCycleNotFound
	}
	cp := *r.cycles[r.order[len(r.order)-1]]
	return &cp, nil
}

func (r *fakeCycleRepo) List(ctx context.Context) ([]domain.VotingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.VotingCycle{}
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.cycles[r.order[i]])
	}
	return out, nil
}

func (r *fakeCycleRepo) ListActive(ctx context.Context) ([]domain.VotingCycle, error) {
	all, _ := r.List(ctx)
	out := []domain.VotingCycle{}
	for _, c := range all {
		if c.Status != domain.CycleCompleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCycleRepo) Update(ctx context.Context, cycle *domain.VotingCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cycles[cycle.ID]; !ok {
		return domain.ErrCycleNotFound
	}
	cycle.UpdatedAt = r.clock.Now()
	cp := *cycle
	r.cycles[cycle.ID] = &cp
	return nil
}

func (r *fakeCycleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CycleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	c, ok := r.cycles[id]
	if !ok {
		return domain.ErrCycleNotFound
	}
	c.Status = status
	c.UpdatedAt = r.clock.Now()
	r.statusUpdates++
	return nil
}

// seed stores a cycle as is, bypassing the create rules.
func (r *fakeCycleRepo) seed(c domain.VotingCycle) *domain.VotingCycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = r.clock.Now().Add(time.Duration(len(r.order)) * time.Millisecond)
	r.cycles[c.ID] = &c
	r.order = append(r.order, c.ID)
	cp := c
	return &cp
}

type fakeSuggestionRepo struct {
	mu          sync.Mutex
	suggestions []*domain.Suggestion
	clock       *fixedClock
}

func newFakeSuggestionRepo(clock *fixedClock) *fakeSuggestionRepo {
	return &fakeSuggestionRepo{clock: clock}
}

func (r *fakeSuggestionRepo) Create(ctx context.Context, s *domain.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.suggestions {
		if existing.UserID == s.UserID && existing.VotingCycleID == s.VotingCycleID {
			return domain.ErrDuplicateSuggestion
		}
	}
	s.ID = uuid.New()
	s.CreatedAt = r.clock.Now().Add(time.Duration(len(r.suggestions)) * time.Millisecond)
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.suggestions = append(r.suggestions, &cp)
	return nil
}

func (r *fakeSuggestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suggestions {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrSuggestionNotFound
}

func (r *fakeSuggestionRepo) GetByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) (*domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suggestions {
		if s.UserID == userID && s.VotingCycleID == cycleID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrSuggestionNotFound
}

func (r *fakeSuggestionRepo) ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Suggestion{}
	for _, s := range r.suggestions {
		if s.VotingCycleID == cycleID {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSuggestionRepo) Update(ctx context.Context, s *domain.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.suggestions {
		if existing.ID == s.ID {
			s.UpdatedAt = r.clock.Now()
			cp := *s
			r.suggestions[i] = &cp
			return nil
		}
	}
	return domain.ErrSuggestionNotFound
}

func (r *fakeSuggestionRepo) seed(userID, cycleID uuid.UUID, title string) domain.Suggestion {
	s := &domain.Suggestion{UserID: userID, VotingCycleID: cycleID, Title: title, Author: title + " author"}
	_ = r.Create(context.Background(), s)
	return *s
}

type fakeVoteRepo struct {
	mu       sync.Mutex
	votes    []domain.Vote
	replaces int
	clock    *fixedClock
}

func newFakeVoteRepo(clock *fixedClock) *fakeVoteRepo {
	return &fakeVoteRepo{clock: clock}
}

func (r *fakeVoteRepo) ReplaceBallot(ctx context.Context, userID, cycleID uuid.UUID, entries []domain.BallotEntry) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++

	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.UserID == userID && v.VotingCycleID == cycleID {
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept

	inserted := []domain.Vote{}
	for _, e := range entries {
		v := domain.Vote{
			ID:               uuid.New(),
			UserID:           userID,
			VotingCycleID:    cycleID,
			BookSuggestionID: e.SuggestionID,
			Points:           e.Points,
			CreatedAt:        r.clock.Now(),
		}
		r.votes = append(r.votes, v)
		inserted = append(inserted, v)
	}
	return inserted, nil
}

func (r *fakeVoteRepo) ListByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Vote{}
	for _, v := range r.votes {
		if v.UserID == userID && v.VotingCycleID == cycleID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) Results(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := map[uuid.UUID]int{}
	var order []uuid.UUID
	for _, v := range r.votes {
		if v.VotingCycleID != cycleID {
			continue
		}
		if _, ok := sums[v.BookSuggestionID]; !ok {
			order = append(order, v.BookSuggestionID)
		}
		sums[v.BookSuggestionID] += v.Points
	}
	out := []domain.VoteResult{}
	for _, id := range order {
		out = append(out, domain.VoteResult{BookSuggestionID: id, VoteCount: sums[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VoteCount > out[j].VoteCount })
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.IsAdmin = isAdmin
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeResultsCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]domain.VoteResult
	hits    int
}

func newFakeResultsCache() *fakeResultsCache {
	return &fakeResultsCache{entries: map[uuid.UUID][]domain.VoteResult{}}
}

func (c *fakeResultsCache) Get(ctx context.Context, id uuid.UUID) ([]domain.VoteResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return r, ok
}

func (c *fakeResultsCache) Set(ctx context.Context, id uuid.UUID, results []domain.VoteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = results
}
