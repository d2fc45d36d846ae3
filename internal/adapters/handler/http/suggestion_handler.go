package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type SuggestionHandler struct {
	service ports.SuggestionService
}

func NewSuggestionHandler(service ports.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		service: service,
	}
}

type suggestionRequest struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	PageCount *int    `json:"pageCount"`
	Link      *string `json:"link"`
	MiscInfo  *string `json:"miscInfo"`
}

func (h *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req suggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	input := ports.CreateSuggestionInput{
		Year:      req.Year,
		PageCount: req.PageCount,
		Link:      req.Link,
		MiscInfo:  req.MiscInfo,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Author != nil {
		input.Author = *req.Author
	}

	suggestion, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusCreated, suggestion)
}

func (h *SuggestionHandler) UpdateSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req suggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	suggestion, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), ports.UpdateSuggestionInput{
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		PageCount: req.PageCount,
		Link:      req.Link,
		MiscInfo:  req.MiscInfo,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusOK, suggestion)
}

func (h *SuggestionHandler) ListByCycle(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.ListByCycle(r.Context(), chi.URLParam(r, "cycleId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, suggestions)
}

func (h *SuggestionHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	suggestion, err := h.service.GetOwn(r.Context(), userID, chi.URLParam(r, "cycleId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, suggestion)
}
