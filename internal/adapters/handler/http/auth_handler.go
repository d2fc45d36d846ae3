package http

import (
	"net/http"
	"time"

	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	cookieDomain string
	cookieSecure bool
	tokenTTL     time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieDomain string, cookieSecure bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
		tokenTTL:     tokenTTL,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Secret   string `json:"secret"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	_, err := h.authService.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Secret:   req.Secret,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User created successfully",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	h.setAccessTokenCookie(w, token)
	JSONResponse(w, http.StatusOK, newLoginResponse(token, user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookieDomain})
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}

func newLoginResponse(token string, user *domain.User) loginResponse {
	return loginResponse{
		Token: token,
		User: loginUser{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
	}
}
