package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetdesk-go/internal/document"
	"fleetdesk-go/internal/domain/driver"
	"fleetdesk-go/internal/domain/fine"
	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type fineRequest struct {
	DriverID     string  `json:"driver_id"`
	IssuedOn     string  `json:"issued_on"`
	Place        string  `json:"place"`
	Amount       float64 `json:"amount"`
	VehiclePlate string  `json:"vehicle_plate"`
	Nature       string  `json:"nature"`
}

type fineResponse struct {
	ID           string  `json:"id"`
	DriverID     *string `json:"driver_id,omitempty"`
	DriverName   *string `json:"driver_name,omitempty"`
	IssuedOn     string  `json:"issued_on"`
	Place        string  `json:"place"`
	Amount       float64 `json:"amount"`
	VehiclePlate string  `json:"vehicle_plate"`
	Nature       string  `json:"nature"`
}

func toFineResponse(f fine.Fine) fineResponse {
	return fineResponse{
		ID:           f.ID,
		DriverID:     f.DriverID,
		IssuedOn:     f.IssuedOn.Format(dateLayout),
		Place:        f.Place,
		Amount:       f.Amount,
		VehiclePlate: f.VehiclePlate,
		Nature:       f.Nature,
	}
}

func toFineWithDriverResponse(f fine.FineWithDriver) fineResponse {
	resp := toFineResponse(f.Fine)
	if f.DriverFirstName != nil || f.DriverLastName != nil {
		name := joinName(f.DriverFirstName, f.DriverLastName)
		resp.DriverName = &name
	}
	return resp
}

func joinName(first, last *string) string {
	switch {
	case first == nil:
		return deref(last)
	case last == nil:
		return deref(first)
	default:
		return *first + " " + *last
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handlers) ListFines(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	fines, err := h.Fines.List(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("list fines failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]fineResponse, 0, len(fines))
	for _, f := range fines {
		out = append(out, toFineWithDriverResponse(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetFine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	f, err := h.Fines.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeFineError(w, "get fine failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toFineResponse(*f))
}

func (h *Handlers) CreateFine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req fineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	issuedOn, err := parseDateRequired(req.IssuedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "issued_on must be YYYY-MM-DD")
		return
	}

	f, err := h.Fines.Create(r.Context(), fine.CreateFineInput{
		OwnerID:      user.ID,
		DriverID:     optionalID(req.DriverID),
		IssuedOn:     issuedOn,
		Place:        req.Place,
		Amount:       req.Amount,
		VehiclePlate: req.VehiclePlate,
		Nature:       req.Nature,
	})
	if err != nil {
		h.writeFineError(w, "create fine failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toFineResponse(*f))
}

func (h *Handlers) UpdateFine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req fineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	issuedOn, err := parseDateRequired(req.IssuedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "issued_on must be YYYY-MM-DD")
		return
	}

	f, err := h.Fines.Update(r.Context(), fine.UpdateFineInput{
		ID:           chi.URLParam(r, "id"),
		OwnerID:      user.ID,
		DriverID:     optionalID(req.DriverID),
		IssuedOn:     issuedOn,
		Place:        req.Place,
		Amount:       req.Amount,
		VehiclePlate: req.VehiclePlate,
		Nature:       req.Nature,
	})
	if err != nil {
		h.writeFineError(w, "update fine failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toFineResponse(*f))
}

func (h *Handlers) DeleteFine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Fines.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writeFineError(w, "delete fine failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FineDesignation renders the driver-designation letter for a fine as a
// PDF. The fine must carry a responsible driver; the letter is signed by
// the owner's oldest driver record, which acts as the account holder.
func (h *Handlers) FineDesignation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	f, err := h.Fines.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeFineError(w, "get fine failed", err)
		return
	}
	if f.DriverID == nil {
		writeError(w, http.StatusBadRequest, "no_driver", "fine has no responsible driver")
		return
	}

	designated, err := h.Drivers.Get(r.Context(), user.ID, *f.DriverID)
	if err != nil {
		h.writeDriverError(w, "get designated driver failed", err)
		return
	}

	designator, err := h.Drivers.First(r.Context(), user.ID)
	if err != nil {
		h.writeDriverError(w, "get designating driver failed", err)
		return
	}

	letter := document.Designation{
		FineDate:     f.IssuedOn,
		FinePlace:    f.Place,
		FineAmount:   f.Amount,
		VehiclePlate: f.VehiclePlate,
		Nature:       f.Nature,
		Designator:   toParty(*designator),
		Designated:   toParty(*designated),
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "designation-"+f.ID+".pdf"))
	if err := letter.RenderPDF(w); err != nil {
		h.log.InternalError("render designation failed", err)
	}
}

func toParty(d driver.Driver) document.Party {
	return document.Party{
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Street:          d.AddressStreet,
		PostalCode:      d.AddressPostalCode,
		City:            d.AddressCity,
		BirthDate:       d.BirthDate,
		BirthPlace:      d.BirthPlace,
		LicenseNumber:   d.LicenseNumber,
		LicenseIssuedOn: d.LicenseIssuedOn,
		LicenseIssuedBy: d.LicenseIssuedBy,
	}
}

func (h *Handlers) writeFineError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, fine.ErrFineNotFound):
		writeError(w, http.StatusNotFound, "fine_not_found", err.Error())
	case errors.Is(err, fine.ErrDateRequired),
		errors.Is(err, fine.ErrPlaceRequired),
		errors.Is(err, fine.ErrPlateRequired),
		errors.Is(err, fine.ErrNatureRequired),
		errors.Is(err, fine.ErrNegativeAmount),
		errors.Is(err, fine.ErrUnknownDriver):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(message, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
