package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/api/validate"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/pawcat-app/pawcat-backend/internal/services"
	"github.com/shopspring/decimal"
)

type DashboardHandler struct {
	ledger *services.LedgerService
}

func NewDashboardHandler(ledger *services.LedgerService) *DashboardHandler {
	return &DashboardHandler{ledger: ledger}
}

// transactionReq mirrors TransactionInput on the wire. Every field is
// optional so the same DTO serves create and partial update; the service
// decides what is required.
type transactionReq struct {
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Date        *models.Date     `json:"date"`
	CategoryID  *string          `json:"category_id"`
}

func (req transactionReq) input() services.TransactionInput {
	in := services.TransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		in.Type = &t
	}
	return in
}

func (h *DashboardHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	txs, err := h.ledger.List(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	httpx.Respond(w, http.StatusOK, "Transactions retrieved", txs)
}

func (h *DashboardHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req transactionReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	t, err := h.ledger.Create(r.Context(), uid, req.input())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, "Transaction added", t)
}

func (h *DashboardHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	var req transactionReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	t, err := h.ledger.Update(r.Context(), uid, id, req.input())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Transaction updated", t)
}

func (h *DashboardHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.ledger.Delete(r.Context(), uid, id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Transaction deleted", nil)
}

type categoryReq struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (h *DashboardHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	cats, err := h.ledger.ListCategories(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	httpx.Respond(w, http.StatusOK, "Categories retrieved", cats)
}

func (h *DashboardHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req categoryReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	c, err := h.ledger.CreateCategory(r.Context(), uid, req.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, "Category added", c)
}

func (h *DashboardHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	var req categoryReq
	if err := validate.Bind(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, "Validation error", err)
		return
	}
	c, err := h.ledger.UpdateCategory(r.Context(), uid, id, req.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Category updated", c)
}

func (h *DashboardHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.ledger.DeleteCategory(r.Context(), uid, id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Category deleted", nil)
}
