package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetdesk-go/internal/domain/vehicle"
	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type vehicleRequest struct {
	Plate           string `json:"plate"`
	Model           string `json:"model"`
	Status          string `json:"status"`
	InspectionFrom  string `json:"inspection_from"`
	InspectionUntil string `json:"inspection_until"`
}

type vehicleResponse struct {
	ID              string  `json:"id"`
	Plate           string  `json:"plate"`
	Model           string  `json:"model,omitempty"`
	Status          string  `json:"status"`
	InspectionFrom  *string `json:"inspection_from,omitempty"`
	InspectionUntil *string `json:"inspection_until,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toVehicleResponse(v vehicle.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:              v.ID,
		Plate:           v.Plate,
		Model:           v.Model,
		Status:          v.Status,
		InspectionFrom:  formatDate(v.InspectionFrom),
		InspectionUntil: formatDate(v.InspectionUntil),
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handlers) ListVehicles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	filter := vehicle.ListFilter{
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}
	vehicles, err := h.Vehicles.List(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("list vehicles failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	v, err := h.Vehicles.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeVehicleError(w, "get vehicle failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(*v))
}

func (h *Handlers) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	from, err := parseDateParam(req.InspectionFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "inspection_from must be YYYY-MM-DD")
		return
	}
	until, err := parseDateParam(req.InspectionUntil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "inspection_until must be YYYY-MM-DD")
		return
	}

	v, err := h.Vehicles.Create(r.Context(), vehicle.CreateVehicleInput{
		OwnerID:         user.ID,
		Plate:           req.Plate,
		Model:           req.Model,
		Status:          req.Status,
		InspectionFrom:  from,
		InspectionUntil: until,
	})
	if err != nil {
		h.writeVehicleError(w, "create vehicle failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toVehicleResponse(*v))
}

func (h *Handlers) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	from, err := parseDateParam(req.InspectionFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "inspection_from must be YYYY-MM-DD")
		return
	}
	until, err := parseDateParam(req.InspectionUntil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "inspection_until must be YYYY-MM-DD")
		return
	}

	v, err := h.Vehicles.Update(r.Context(), vehicle.UpdateVehicleInput{
		ID:              chi.URLParam(r, "id"),
		OwnerID:         user.ID,
		Plate:           req.Plate,
		Model:           req.Model,
		Status:          req.Status,
		InspectionFrom:  from,
		InspectionUntil: until,
	})
	if err != nil {
		h.writeVehicleError(w, "update vehicle failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(*v))
}

func (h *Handlers) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Vehicles.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writeVehicleError(w, "delete vehicle failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeVehicleError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, "vehicle_not_found", err.Error())
	case errors.Is(err, vehicle.ErrPlateRequired),
		errors.Is(err, vehicle.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(message, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
