package handlers

import (
	"net/http"

	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/api/validate"
	"github.com/pawcat-app/pawcat-backend/internal/config"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
	cfg   config.Config
}

func NewAuthHandler(users *services.UserService, cfg config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type registerReq struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"full_name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
	HexColor  string `json:"hex_color" validate:"omitempty,max=32"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	_, err := h.users.Register(r.Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		Password2: req.Password2,
		HexColor:  req.HexColor,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, "User registered successfully", nil)
}

type loginReq struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	u, pair, err := h.users.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.setCookie(w, "access_token", pair.Access, int(h.cfg.AccessTTL.Seconds()))
	h.setCookie(w, "refresh_token", pair.Refresh, int(h.cfg.RefreshTTL.Seconds()))
	httpx.Respond(w, http.StatusOK, "Login successful", map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		httpx.Respond(w, http.StatusBadRequest, "No refresh token found", nil)
		return
	}
	if err := h.users.Logout(c.Value); err != nil {
		httpx.Error(w, err)
		return
	}
	h.clearCookie(w, "refresh_token")
	h.clearCookie(w, "access_token")
	httpx.Respond(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		httpx.Respond(w, http.StatusBadRequest, "No refresh token found", nil)
		return
	}
	access, err := h.users.Refresh(c.Value)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	h.setCookie(w, "access_token", access, int(h.cfg.AccessTTL.Seconds()))
	httpx.Respond(w, http.StatusOK, "Token refreshed", nil)
}

type forgotPasswordReq struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	HexColor        string `json:"hex_color" validate:"required"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	if err := h.users.ForgotPassword(r.Context(), req.UsernameOrEmail, req.HexColor, req.NewPassword); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.Error(w, services.ErrUnauthorized)
		return
	}
	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "User info retrieved successfully", map[string]any{
		"user_id":   u.ID,
		"username":  u.Username,
		"avatar_id": u.AvatarID,
		"is_active": u.IsActive,
		"is_admin":  u.IsAdmin(),
	})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
	})
}
