package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

// maxYearAhead bounds how far into the future a publication year may be.
const maxYearAhead = 5

type suggestionService struct {
	repo   ports.SuggestionRepository
	cycles ports.CycleRepository
	clock  ports.Clock
}

func NewSuggestionService(repo ports.SuggestionRepository, cycles ports.CycleRepository, clock ports.Clock) ports.SuggestionService {
	return &suggestionService{
		repo:   repo,
		cycles: cycles,
		clock:  clock,
	}
}

func (s *suggestionService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateSuggestionInput) (*domain.Suggestion, error) {
	title := sanitizeText(input.Title)
	author := sanitizeText(input.Author)
	if title == "" || author == "" {
		return nil, domain.ErrTitleAuthorRequired
	}

	now := s.clock.Now()

	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := cycle.AcceptsSuggestions(now); err != nil {
		return nil, err
	}

	_, err = s.repo.GetByUserAndCycle(ctx, userID, cycle.ID)
	if err == nil {
		return nil, domain.ErrDuplicateSuggestion
	}
	if !errors.Is(err, domain.ErrSuggestionNotFound) {
		return nil, err
	}

	suggestion := &domain.Suggestion{
		UserID:        userID,
		VotingCycleID: cycle.ID,
		Title:         title,
		Author:        author,
		Year:          positiveOrNil(input.Year),
		PageCount:     positiveOrNil(input.PageCount),
		Link:          sanitizeOptional(input.Link),
		MiscInfo:      sanitizeOptional(input.MiscInfo),
	}
	if err := checkSuggestion(suggestion, now); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "book suggested", "suggestion_id", suggestion.ID, "cycle_id", cycle.ID, "user_id", userID)
	return suggestion, nil
}

func (s *suggestionService) Update(ctx context.Context, userID uuid.UUID, id string, input ports.UpdateSuggestionInput) (*domain.Suggestion, error) {
	suggestionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrSuggestionNotFound
	}

	suggestion, err := s.repo.GetByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	// someone else's suggestion looks the same as a missing one
	if suggestion.UserID != userID {
		return nil, domain.ErrSuggestionNotFound
	}

	cycle, err := s.cycles.GetByID(ctx, suggestion.VotingCycleID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := cycle.AcceptsSuggestions(now); err != nil {
		return nil, err
	}

	if input.Title != nil {
		suggestion.Title = sanitizeText(*input.Title)
	}
	if input.Author != nil {
		suggestion.Author = sanitizeText(*input.Author)
	}
	if input.Year != nil {
		suggestion.Year = positiveOrNil(input.Year)
	}
	if input.PageCount != nil {
		suggestion.PageCount = positiveOrNil(input.PageCount)
	}
	if input.Link != nil {
		suggestion.Link = sanitizeOptional(input.Link)
	}
	if input.MiscInfo != nil {
		suggestion.MiscInfo = sanitizeOptional(input.MiscInfo)
	}

	if suggestion.Title == "" || suggestion.Author == "" {
		return nil, domain.ErrTitleAuthorRequired
	}
	if err := checkSuggestion(suggestion, now); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, suggestion); err != nil {
		return nil, err
	}
	return suggestion, nil
}

func (s *suggestionService) ListByCycle(ctx context.Context, cycleID string) ([]domain.Suggestion, error) {
	id, err := uuid.Parse(cycleID)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}
	return s.repo.ListByCycle(ctx, id)
}

func (s *suggestionService) GetOwn(ctx context.Context, userID uuid.UUID, cycleID string) (*domain.Suggestion, error) {
	id, err := uuid.Parse(cycleID)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}
	return s.repo.GetByUserAndCycle(ctx, userID, id)
}

func checkSuggestion(suggestion *domain.Suggestion, now time.Time) error {
	if err := validateStruct(suggestion); err != nil {
		return err
	}
	if suggestion.Year != nil && *suggestion.Year > now.Year()+maxYearAhead {
		return domain.Validation("year must not be later than %d", now.Year()+maxYearAhead)
	}
	return nil
}
