package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetdesk-go/internal/domain/assignment"
	"fleetdesk-go/internal/domain/driver"
	"fleetdesk-go/internal/storage"
	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type driverRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Status            string `json:"status"`
	AddressStreet     string `json:"address_street"`
	AddressPostalCode string `json:"address_postal_code"`
	AddressCity       string `json:"address_city"`
	LicenseNumber     string `json:"license_number"`
	BirthDate         string `json:"birth_date"`
	BirthPlace        string `json:"birth_place"`
	LicenseIssuedOn   string `json:"license_issued_on"`
	LicenseIssuedBy   string `json:"license_issued_by"`
}

type driverVehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
}

type driverResponse struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Phone             string  `json:"phone,omitempty"`
	Email             string  `json:"email,omitempty"`
	Status            string  `json:"status"`
	AddressStreet     string  `json:"address_street,omitempty"`
	AddressPostalCode string  `json:"address_postal_code,omitempty"`
	AddressCity       string  `json:"address_city,omitempty"`
	LicenseNumber     string  `json:"license_number,omitempty"`
	BirthDate         *string `json:"birth_date,omitempty"`
	BirthPlace        string  `json:"birth_place,omitempty"`
	LicenseIssuedOn   *string `json:"license_issued_on,omitempty"`
	LicenseIssuedBy   string  `json:"license_issued_by,omitempty"`
	ProfilePhotoURL   string  `json:"profile_photo_url,omitempty"`
	LicensePhotoURL   string  `json:"license_photo_url,omitempty"`
	VehicleID         *string `json:"vehicle_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func toDriverResponse(d driver.Driver) driverResponse {
	return driverResponse{
		ID:                d.ID,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Phone:             d.Phone,
		Email:             d.Email,
		Status:            d.Status,
		AddressStreet:     d.AddressStreet,
		AddressPostalCode: d.AddressPostalCode,
		AddressCity:       d.AddressCity,
		LicenseNumber:     d.LicenseNumber,
		BirthDate:         formatDate(d.BirthDate),
		BirthPlace:        d.BirthPlace,
		LicenseIssuedOn:   formatDate(d.LicenseIssuedOn),
		LicenseIssuedBy:   d.LicenseIssuedBy,
		ProfilePhotoURL:   d.ProfilePhotoURL,
		LicensePhotoURL:   d.LicensePhotoURL,
		VehicleID:         d.VehicleID,
		CreatedAt:         d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handlers) ListDrivers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	drivers, err := h.Drivers.List(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("list drivers failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]driverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, toDriverResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetDriver(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	d, err := h.Drivers.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDriverError(w, "get driver failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDriverResponse(*d))
}

func (h *Handlers) CreateDriver(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req driverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "birth_date must be YYYY-MM-DD")
		return
	}
	issuedOn, err := parseDateParam(req.LicenseIssuedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "license_issued_on must be YYYY-MM-DD")
		return
	}

	d, err := h.Drivers.Create(r.Context(), driver.CreateDriverInput{
		OwnerID:           user.ID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Email:             req.Email,
		Status:            req.Status,
		AddressStreet:     req.AddressStreet,
		AddressPostalCode: req.AddressPostalCode,
		AddressCity:       req.AddressCity,
		LicenseNumber:     req.LicenseNumber,
		BirthDate:         birthDate,
		BirthPlace:        req.BirthPlace,
		LicenseIssuedOn:   issuedOn,
		LicenseIssuedBy:   req.LicenseIssuedBy,
	})
	if err != nil {
		h.writeDriverError(w, "create driver failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toDriverResponse(*d))
}

func (h *Handlers) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req driverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "birth_date must be YYYY-MM-DD")
		return
	}
	issuedOn, err := parseDateParam(req.LicenseIssuedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "license_issued_on must be YYYY-MM-DD")
		return
	}

	d, err := h.Drivers.Update(r.Context(), driver.UpdateDriverInput{
		ID:                chi.URLParam(r, "id"),
		OwnerID:           user.ID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Email:             req.Email,
		Status:            req.Status,
		AddressStreet:     req.AddressStreet,
		AddressPostalCode: req.AddressPostalCode,
		AddressCity:       req.AddressCity,
		LicenseNumber:     req.LicenseNumber,
		BirthDate:         birthDate,
		BirthPlace:        req.BirthPlace,
		LicenseIssuedOn:   issuedOn,
		LicenseIssuedBy:   req.LicenseIssuedBy,
	})
	if err != nil {
		h.writeDriverError(w, "update driver failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDriverResponse(*d))
}

func (h *Handlers) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Drivers.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writeDriverError(w, "delete driver failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeDriverVehicle swaps the driver onto another vehicle, or off any
// vehicle when the body carries an empty id.
func (h *Handlers) ChangeDriverVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req driverVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if err := h.Assignments.ChangeVehicle(r.Context(), user.ID, chi.URLParam(r, "id"), req.VehicleID); err != nil {
		h.writeAssignmentError(w, "change vehicle failed", err)
		return
	}

	d, err := h.Drivers.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDriverError(w, "get driver failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDriverResponse(*d))
}

// AttachDriverPhoto accepts a multipart form with a "file" part and a
// "kind" field selecting the profile or license slot.
func (h *Handlers) AttachDriverPhoto(w http.ResponseWriter, r *http.Request) {
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

	d, err := h.Drivers.AttachPhoto(r.Context(), user.ID, chi.URLParam(r, "id"), driver.PhotoUpload{
		Kind:        r.FormValue("kind"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, file)
	if err != nil {
		h.writeDriverError(w, "attach photo failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDriverResponse(*d))
}

func (h *Handlers) writeDriverError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, driver.ErrDriverNotFound):
		writeError(w, http.StatusNotFound, "driver_not_found", err.Error())
	case errors.Is(err, driver.ErrNameRequired),
		errors.Is(err, driver.ErrInvalidStatus),
		errors.Is(err, driver.ErrInvalidPhotoKind),
		errors.Is(err, driver.ErrNotAnImage):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	default:
		h.log.InternalError(message, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) writeAssignmentError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, driver.ErrDriverNotFound):
		writeError(w, http.StatusNotFound, "driver_not_found", err.Error())
	case errors.Is(err, assignment.ErrVehicleUnavailable),
		errors.Is(err, assignment.ErrDriverAlreadyAssigned):
		h.log.BusinessError(message, err)
		writeError(w, http.StatusConflict, "assignment_conflict", err.Error())
	case errors.Is(err, assignment.ErrDriverRequired),
		errors.Is(err, assignment.ErrVehicleRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		// vehicle.ErrVehicleNotFound lives in another package; match on
		// it here to keep one mapping for all assignment surfaces.
		h.writeVehicleError(w, message, err)
	}
}
