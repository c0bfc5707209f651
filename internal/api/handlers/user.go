package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/api/validate"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/pawcat-app/pawcat-backend/internal/services"
)

type UserHandler struct {
	friends  *services.FriendService
	notes    *services.NotificationService
	profiles *services.ProfileService
}

func NewUserHandler(friends *services.FriendService, notes *services.NotificationService, profiles *services.ProfileService) *UserHandler {
	return &UserHandler{friends: friends, notes: notes, profiles: profiles}
}

func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	notes, err := h.notes.ListForUser(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	httpx.Respond(w, http.StatusOK, "Notifications retrieved successfully", notes)
}

type addFriendReq struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req addFriendReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	if err := h.friends.Add(r.Context(), uid, req.ReceiverID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.Respond(w, http.StatusNotFound, "User not found", nil)
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, "Friend request sent", nil)
}

type acceptFriendReq struct {
	SenderID string `json:"sender_id" validate:"required"`
}

func (h *UserHandler) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req acceptFriendReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	if err := h.friends.Accept(r.Context(), uid, req.SenderID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.Respond(w, http.StatusNotFound, "Friend request not found", nil)
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Friend request accepted", nil)
}

func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	users, err := h.friends.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			msg := fmt.Sprintf("User with username or email '%s' not found", query)
			httpx.Respond(w, http.StatusNotFound, msg, nil)
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Users found", users)
}

func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	list, err := h.friends.List(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "List of friends retrieved successfully", list)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	p, err := h.profiles.Get(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "User profile retrieved", p)
}

type profileReq struct {
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	AvatarID *int    `json:"avatar_id"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req profileReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	err := h.profiles.Update(r.Context(), uid, services.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		AvatarID: req.AvatarID,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Profile updated successfully", nil)
}

type paymentMethodReq struct {
	PaymentType   string `json:"payment_type" validate:"required,oneof=gopay ovo shopeepay"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
}

func (h *UserHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req paymentMethodReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	created, err := h.profiles.SetPaymentMethod(r.Context(), uid, models.PaymentType(req.PaymentType), req.AccountNumber)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if created {
		httpx.Respond(w, http.StatusCreated, "Payment method added", nil)
		return
	}
	httpx.Respond(w, http.StatusOK, "Payment method updated", nil)
}

type bankDetailReq struct {
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
}

func (h *UserHandler) SetBankDetail(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req bankDetailReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	created, err := h.profiles.SetBankDetail(r.Context(), uid, req.BankName, req.AccountNumber)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if created {
		httpx.Respond(w, http.StatusCreated, "Bank account added", nil)
		return
	}
	httpx.Respond(w, http.StatusOK, "Bank account updated", nil)
}

func (h *UserHandler) RemoveBankDetail(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	bankName := chi.URLParam(r, "bankName")
	if err := h.profiles.RemoveBankDetail(r.Context(), uid, bankName); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.Respond(w, http.StatusNotFound, "Bank account not found", nil)
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Bank account removed", nil)
}
