package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type CycleHandler struct {
	service ports.CycleService
}

func NewCycleHandler(service ports.CycleService) *CycleHandler {
	return &CycleHandler{
		service: service,
	}
}

type cycleRequest struct {
	SuggestionDeadline *string `json:"suggestionDeadline"`
	VotingDeadline     *string `json:"votingDeadline"`
	VotingMode         *string `json:"votingMode"`
}

func (h *CycleHandler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req cycleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if req.SuggestionDeadline == nil || req.VotingDeadline == nil || req.VotingMode == nil {
		ErrorResponse(w, r, domain.ErrDeadlinesRequired)
		return
	}

	suggestionDeadline, err := parseDeadline("suggestionDeadline", *req.SuggestionDeadline)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	votingDeadline, err := parseDeadline("votingDeadline", *req.VotingDeadline)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	cycle, err := h.service.Create(r.Context(), ports.CreateCycleInput{
		SuggestionDeadline: suggestionDeadline,
		VotingDeadline:     votingDeadline,
		VotingMode:         domain.VotingMode(*req.VotingMode),
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusCreated, cycle)
}

func (h *CycleHandler) UpdateCycle(w http.ResponseWriter, r *http.Request) {
	var req cycleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var input ports.UpdateCycleInput
	if req.SuggestionDeadline != nil {
		t, err := parseDeadline("suggestionDeadline", *req.SuggestionDeadline)
		if err != nil {
			ErrorResponse(w, r, err)
			return
		}
		input.SuggestionDeadline = &t
	}
	if req.VotingDeadline != nil {
		t, err := parseDeadline("votingDeadline", *req.VotingDeadline)
		if err != nil {
			ErrorResponse(w, r, err)
			return
		}
		input.VotingDeadline = &t
	}
	if req.VotingMode != nil {
		mode := domain.VotingMode(*req.VotingMode)
		input.VotingMode = &mode
	}

	cycle, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusOK, cycle)
}

func (h *CycleHandler) CompleteCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, cycle)
}

func (h *CycleHandler) GetCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, cycle)
}

func (h *CycleHandler) GetCurrentCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.GetCurrent(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, cycle)
}

func (h *CycleHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.service.List(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, cycles)
}

func parseDeadline(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.Validation("invalid date format for %s, expected RFC 3339", field)
	}
	return t.UTC(), nil
}
