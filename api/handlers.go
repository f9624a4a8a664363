package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/domain/payment"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/session"
)

const multipartMemory = 32 << 20

// GeneratorService is the domain service the handlers call to produce QR codes.
type GeneratorService interface {
	Generate(ctx context.Context, sub *generator.Submission) (*generator.Result, error)
}

// PaymentService wraps the payment gate operations.
type PaymentService interface {
	CreateOrder(ctx context.Context, amountINR float64) (*payment.Order, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error
	Price() float64
}

// BlobOpener streams stored blobs back out.
type BlobOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	generator      GeneratorService
	payments       PaymentService
	sessions       *session.Manager
	uploads        BlobOpener
	qrImages       BlobOpener
	requirePayment bool
	razorpayKeyID  string
}

// CreateOrderRequest is the request body for the create_order endpoint.
// A nil Amount falls back to the configured price.
type CreateOrderRequest struct {
	Amount *float64 `json:"amount"`
}

// CreateOrderResponse echoes the gateway order back to the checkout page.
type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(gen GeneratorService, payments PaymentService, sessions *session.Manager,
	uploads, qrImages BlobOpener, requirePayment bool, razorpayKeyID string) *Handler {
	return &Handler{
		generator:      gen,
		payments:       payments,
		sessions:       sessions,
		uploads:        uploads,
		qrImages:       qrImages,
		requirePayment: requirePayment,
		razorpayKeyID:  razorpayKeyID,
	}
}

// Index renders the input form with any queued flash messages.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sid := h.sessions.SessionID(w, r)
	renderPage(w, r, PageData{
		Flashes:        h.sessions.ConsumeFlashes(sid),
		Paid:           h.sessions.Paid(sid),
		RequirePayment: h.requirePayment,
		RazorpayKeyID:  h.razorpayKeyID,
		PriceINR:       h.payments.Price(),
	})
}

// GenerateQR handles a form submission. Rejections queue a flash and
// redirect back to the form; success re-renders the form with the
// target and a link to the generated image.
func (h *Handler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.sessions.SessionID(w, r)

	if h.requirePayment && !h.sessions.Paid(sid) {
		appLogger.CtxInfo(ctx, "Generation blocked, session not paid", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Data: map[string]interface{}{
				constant.DataSessionID: sid,
			},
		})
		h.flashAndRedirect(w, r, sid, constant.FlashCompletePayment)
		return
	}

	sub, err := readSubmission(r)
	if err != nil {
		appLogger.CtxWarn(ctx, "Failed to parse submission", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		h.flashAndRedirect(w, r, sid, constant.FlashInvalidSubmission)
		return
	}

	result, err := h.generator.Generate(ctx, sub)
	if err != nil {
		h.flashAndRedirect(w, r, sid, flashForError(err))
		return
	}

	renderPage(w, r, PageData{
		Flashes:        h.sessions.ConsumeFlashes(sid),
		Paid:           h.sessions.Paid(sid),
		RequirePayment: h.requirePayment,
		Target:         result.Target,
		QRImageURL:     "/qr/" + result.QRFilename,
		RazorpayKeyID:  h.razorpayKeyID,
		PriceINR:       h.payments.Price(),
	})
}

// ServeFile streams an uploaded blob back inline.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	h.serveBlob(w, r, h.uploads, "application/octet-stream")
}

// ServeQR streams a generated QR image.
func (h *Handler) ServeQR(w http.ResponseWriter, r *http.Request) {
	h.serveBlob(w, r, h.qrImages, "image/png")
}

func (h *Handler) serveBlob(w http.ResponseWriter, r *http.Request, store BlobOpener, contentType string) {
	name := chi.URLParam(r, "filename")

	rc, err := store.Open(name)
	if err != nil {
		appLogger.CtxInfo(r.Context(), "Blob not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxServeFile,
			Data: map[string]interface{}{
				constant.DataFilename: name,
			},
		})
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	if _, err := io.Copy(w, rc); err != nil {
		appLogger.CtxWarn(r.Context(), "Failed to stream blob", appLogger.LoggerInfo{
			ContextFunction: constant.CtxServeFile,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataFilename: name,
			},
		})
	}
}

// CreateOrder creates a gateway order for the checkout page.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		appLogger.CtxWarn(ctx, "Error decoding order request", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateOrder,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	amount := h.payments.Price()
	if req.Amount != nil {
		amount = *req.Amount
	}

	order, err := h.payments.CreateOrder(ctx, amount)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount):
			WriteJSONError(w, "Invalid amount", http.StatusBadRequest)
		case errors.Is(err, payment.ErrNotConfigured):
			WriteJSONError(w, "Payment not configured", http.StatusInternalServerError)
		default:
			WriteJSONError(w, "Failed to create order", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, http.StatusOK)
}

// PaymentHandler receives the gateway's checkout callback, verifies the
// signature and unlocks the session on success. Every outcome redirects
// back to the form with a flash message.
func (h *Handler) PaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.sessions.SessionID(w, r)

	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, sid, constant.FlashMissingPaymentDetails)
		return
	}

	orderID := r.FormValue("razorpay_order_id")
	paymentID := r.FormValue("razorpay_payment_id")
	signature := r.FormValue("razorpay_signature")

	err := h.payments.VerifyPayment(ctx, orderID, paymentID, signature)
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		h.flashAndRedirect(w, r, sid, constant.FlashPaymentNotConfigured)
	case errors.Is(err, payment.ErrMissingPaymentFields):
		h.flashAndRedirect(w, r, sid, constant.FlashMissingPaymentDetails)
	case err != nil:
		h.flashAndRedirect(w, r, sid, constant.FlashVerificationFailed)
	default:
		h.sessions.SetPaid(sid)
		appLogger.CtxInfo(ctx, "Session unlocked", appLogger.LoggerInfo{
			ContextFunction: constant.CtxPaymentHandler,
			Data: map[string]interface{}{
				constant.DataSessionID: sid,
				constant.DataOrderID:   orderID,
			},
		})
		h.flashAndRedirect(w, r, sid, constant.FlashPaymentSuccess)
	}
}

// flashAndRedirect queues a message and sends the browser back to the form.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, sid, message string) {
	h.sessions.AddFlash(sid, message)
	http.Redirect(w, r, constant.RouteIndex, http.StatusSeeOther)
}

// readSubmission builds a Submission from the posted form. A missing
// file part is left empty for the validator to reject.
func readSubmission(r *http.Request) (*generator.Submission, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}

	sub := &generator.Submission{
		Mode:     r.FormValue("mode"),
		RawValue: r.FormValue("url"),
	}

	if sub.Mode == generator.ModeFile {
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return nil, err
			}
			sub.Filename = header.Filename
			sub.Data = data
		}
	}

	return sub, nil
}

// flashForError maps a generation error to its user-facing message.
func flashForError(err error) string {
	switch {
	case errors.Is(err, generator.ErrEmptyValue):
		return constant.FlashEnterURL
	case errors.Is(err, generator.ErrNoFile):
		return constant.FlashChooseFile
	case errors.Is(err, generator.ErrExtNotAllowed):
		return constant.FlashFileTypeNotAllowed
	case errors.Is(err, generator.ErrInvalidMode):
		return constant.FlashInvalidSubmission
	default:
		return constant.FlashGenerationFailed
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
