package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetdesk-go/internal/domain/payment"
	"fleetdesk-go/internal/storage"
	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type receiptResponse struct {
	ID           string  `json:"id"`
	ImageURL     string  `json:"image_url"`
	DriverID     *string `json:"driver_id,omitempty"`
	DriverName   *string `json:"driver_name,omitempty"`
	VehicleID    *string `json:"vehicle_id,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toReceiptResponse(rc payment.Receipt) receiptResponse {
	return receiptResponse{
		ID:        rc.ID,
		ImageURL:  rc.ImageURL,
		DriverID:  rc.DriverID,
		VehicleID: rc.VehicleID,
		CreatedAt: rc.CreatedAt.Format(time.RFC3339),
	}
}

func toReceiptWithLinksResponse(rc payment.ReceiptWithLinks) receiptResponse {
	resp := toReceiptResponse(rc.Receipt)
	if rc.DriverFirstName != nil || rc.DriverLastName != nil {
		name := joinName(rc.DriverFirstName, rc.DriverLastName)
		resp.DriverName = &name
	}
	resp.VehiclePlate = rc.VehiclePlate
	resp.VehicleModel = rc.VehicleModel
	return resp
}

func (h *Handlers) ListPaymentReceipts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	receipts, err := h.Payments.List(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("list payment receipts failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]receiptResponse, 0, len(receipts))
	for _, rc := range receipts {
		out = append(out, toReceiptWithLinksResponse(rc))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreatePaymentReceipt accepts a multipart form with a "file" image part
// and optional "driver_id" and "vehicle_id" fields; at least one link is
// required.
func (h *Handlers) CreatePaymentReceipt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file_required", "a file part is required")
		return
	}
	defer file.Close()

	receipt, err := h.Payments.Create(r.Context(), payment.CreateReceiptInput{
		OwnerID:     user.ID,
		DriverID:    optionalID(r.FormValue("driver_id")),
		VehicleID:   optionalID(r.FormValue("vehicle_id")),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, file)
	if err != nil {
		h.writePaymentError(w, "create payment receipt failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toReceiptResponse(*receipt))
}

func (h *Handlers) DeletePaymentReceipt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Payments.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writePaymentError(w, "delete payment receipt failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writePaymentError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, payment.ErrReceiptNotFound):
		writeError(w, http.StatusNotFound, "receipt_not_found", err.Error())
	case errors.Is(err, payment.ErrImageRequired),
		errors.Is(err, payment.ErrLinkRequired),
		errors.Is(err, payment.ErrNotAnImage),
		errors.Is(err, payment.ErrUnknownDriver),
		errors.Is(err, payment.ErrUnknownVehicle):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	default:
		h.log.InternalError(message, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
