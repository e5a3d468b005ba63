package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/yuchenwang/wallet-api/internal/http/respond"
	"github.com/yuchenwang/wallet-api/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary/{user_id}", h.summary)
	r.Get("/get/{user_id}", h.list)
	r.With(middleware.AllowContentType("application/json")).Post("/create", h.create)
	r.Delete("/delete/{id}", h.delete)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summarize(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(sum))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

type createTransactionRequest struct {
	UserID   string           `json:"user_id"`
	Title    string           `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:   req.UserID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := transaction.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteByID(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "transaction deleted"})
}

// respondError maps the error taxonomy onto HTTP statuses. Store failures
// stay generic on the wire; the cause is only logged.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr *transaction.ValidationError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, transaction.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	default:
		slog.Error("transaction request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respond.JSON(w, status, errorResponse{Error: msg})
}
