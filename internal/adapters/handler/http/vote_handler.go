package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	BookSuggestionIDs []string `json:"bookSuggestionIds"`
	OrderedBookIDs    []string `json:"orderedBookIds"`
}

func (h *VoteHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	votes, err := h.service.Submit(r.Context(), userID, ports.SubmitBallotInput{
		BookSuggestionIDs: req.BookSuggestionIDs,
		OrderedBookIDs:    req.OrderedBookIDs,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusOK, votes)
}

func (h *VoteHandler) ListOwnVotes(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	votes, err := h.service.ListOwn(r.Context(), userID, chi.URLParam(r, "cycleId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, votes)
}

func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context(), chi.URLParam(r, "cycleId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	cacheableResponse(w, r, results)
}

func (h *VoteHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Leaderboard(r.Context(), chi.URLParam(r, "cycleId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	cacheableResponse(w, r, board)
}

// cacheableResponse serves immutable data with a content hash ETag and
// answers a matching If-None-Match with 304.
func cacheableResponse(w http.ResponseWriter, r *http.Request, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, max-age=0, must-revalidate")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n'))
}
