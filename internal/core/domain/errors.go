package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindBusinessLogic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindBusinessLogic:
		return "BUSINESS_LOGIC_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// Error is the typed failure raised by the core. Details carries structured
// context such as expected/actual counts.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg) }

func Forbidden(msg string) *Error { return newError(KindForbidden, msg) }

func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

func Conflict(msg string) *Error { return newError(KindConflict, msg) }

func BusinessLogic(msg string) *Error { return newError(KindBusinessLogic, msg) }

// KindOf reports the kind of err. Anything that is not a *Error is internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrCycleNotFound       = NotFound("voting cycle not found")
	ErrNoActiveCycle       = NotFound("no active voting cycle found")
	ErrActiveCycleExists   = Conflict("cannot create a new voting cycle while one is still active")
	ErrCycleCompleted      = BusinessLogic("cannot edit a completed voting cycle")
	ErrCycleAlreadyClosed  = BusinessLogic("voting cycle is already completed")
	ErrDeadlinesRequired   = Validation("suggestion deadline, voting deadline, and voting mode are required")
	ErrSuggestionInPast    = Validation("suggestion deadline must be in the future")
	ErrDeadlineOrder       = Validation("voting deadline must be after suggestion deadline")
	ErrInvalidVotingMode   = Validation("voting mode must be one of: normal, ranking")
	ErrResultsNotAvailable = BusinessLogic("vote results are only available for completed cycles")

	ErrSuggestionNotFound       = NotFound("book suggestion not found")
	ErrDuplicateSuggestion      = Conflict("you can only suggest one book per voting cycle")
	ErrNotSuggestingPhase       = BusinessLogic("book suggestions are only allowed during the suggesting phase")
	ErrSuggestionDeadlinePassed = BusinessLogic("suggestion deadline has passed")
	ErrTitleAuthorRequired      = Validation("title and author are required")

	ErrNotVotingPhase         = BusinessLogic("voting is only allowed during the voting phase")
	ErrVotingDeadlinePassed   = BusinessLogic("voting deadline has passed")
	ErrApprovalIDsRequired    = Validation("normal mode requires bookSuggestionIds")
	ErrRankingIDsRequired     = Validation("ranking mode requires orderedBookIds")
	ErrInvalidSuggestionIDs   = Validation("one or more book suggestions are invalid or not part of the current voting cycle")
	ErrOwnSuggestionInRanking = Validation("cannot include your own book suggestion in ranking")

	ErrInvalidCredentials     = Unauthorized("invalid credentials")
	ErrMissingToken           = Unauthorized("access token required")
	ErrInvalidToken           = Unauthorized("invalid or expired token")
	ErrAdminRequired          = Forbidden("admin access required")
	ErrInvalidRegistration    = Forbidden("invalid registration secret")
	ErrRegistrationIncomplete = Validation("username, password, email, and secret are required")
	ErrUsernameTaken          = Conflict("username already exists")
	ErrEmailTaken             = Conflict("email already exists")
	ErrUserNotFound           = NotFound("user not found")
)

// RankingLengthError reports a ranking that does not cover every eligible
// suggestion.
func RankingLengthError(expected, got int) *Error {
	e := Validation("in ranking mode, all books except your own must be ranked. Expected %d books, got %d", expected, got)
	e.Details = map[string]any{"expected": expected, "got": got}
	return e
}
