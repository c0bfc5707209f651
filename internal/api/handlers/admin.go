package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/api/validate"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/pawcat-app/pawcat-backend/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
	notes *services.NotificationService
}

func NewAdminHandler(admin *services.AdminService, notes *services.NotificationService) *AdminHandler {
	return &AdminHandler{admin: admin, notes: notes}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "List of all users", users)
}

func (h *AdminHandler) ListInactiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListInactiveUsers(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Users inactive for more than 5 months", users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r.Context())
	userID := chi.URLParam(r, "id")
	if err := h.admin.DeleteUser(r.Context(), actorID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			httpx.Respond(w, http.StatusForbidden, "Cannot delete admin or superuser", nil)
		case errors.Is(err, services.ErrNotFound):
			httpx.Respond(w, http.StatusNotFound, "User not found", nil)
		default:
			httpx.Error(w, err)
		}
		return
	}
	httpx.Respond(w, http.StatusOK, "User successfully deleted", nil)
}

type sendNotificationReq struct {
	Title      string `json:"title" validate:"required,max=100"`
	Message    string `json:"message" validate:"required,max=500"`
	ReceiverID string `json:"receiver_id"`
}

func (h *AdminHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req sendNotificationReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	broadcast, err := h.notes.Send(r.Context(), uid, req.Title, req.Message, req.ReceiverID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.Respond(w, http.StatusNotFound, "Receiver not found", nil)
			return
		}
		httpx.Error(w, err)
		return
	}
	if broadcast {
		httpx.Respond(w, http.StatusCreated, "Notification successfully sent to all users", nil)
		return
	}
	httpx.Respond(w, http.StatusCreated, "Notification successfully sent", nil)
}

func (h *AdminHandler) SeeNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListAll(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	httpx.Respond(w, http.StatusOK, "Notifications retrieved successfully", notes)
}
