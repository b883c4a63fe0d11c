package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/service"
	"go.uber.org/zap"
)

// PaymentsHandler talks to the payment processor and records payments.
// Processor is nil when no processor key is configured; Mailer is nil when
// receipts are disabled.
type PaymentsHandler struct {
	DB        PaymentStore
	Processor PaymentProcessor
	Mailer    ReceiptSender
	Log       *zap.Logger
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentRequest struct {
	Email         string     `json:"email" validate:"required,email"`
	Price         float64    `json:"price" validate:"gte=0,lte=999999.99"`
	TransactionID string     `json:"transactionId" validate:"required"`
	Date          *time.Time `json:"date"`
	Status        string     `json:"status"`
}

// CreateIntent handles POST /create-payment-intent. Price is in dollars and
// capped at service.MaxPrice. No token is required: checkout runs before
// the client has a session.
func (h *PaymentsHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	if h.Processor == nil {
		apierror.Write(w, r, apierror.ServiceUnavailable("payments not configured"))
		return
	}
	var req PaymentIntentRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	secret, err := h.Processor.CreateIntent(r.Context(), service.MinorUnits(req.Price))
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, PaymentIntentResponse{ClientSecret: secret})
}

// Record handles POST /payments without a token. It stores the receipt
// only; premium access is granted separately by the signed-in owner.
func (h *PaymentsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	p := &models.Payment{
		Email:         normalizeEmail(req.Email),
		Price:         req.Price,
		TransactionID: req.TransactionID,
		Date:          time.Now().UTC(),
		Status:        req.Status,
	}
	if req.Date != nil {
		p.Date = req.Date.UTC()
	}
	id, err := h.DB.InsertPayment(r.Context(), p)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	p.ID = id
	if h.Mailer != nil {
		if err := h.Mailer.SendReceipt(p); err != nil {
			h.Log.Warn("payment receipt not sent", zap.String("email", p.Email), zap.Error(err))
		}
	}
	writeInserted(w, r, id)
}

// History handles GET /payments/{email}; callers see only their own.
func (h *PaymentsHandler) History(w http.ResponseWriter, r *http.Request) {
	email, ok := selfEmail(w, r)
	if !ok {
		return
	}
	payments, err := h.DB.PaymentsByEmail(r.Context(), email)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, payments)
}
