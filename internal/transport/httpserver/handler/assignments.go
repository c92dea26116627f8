package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type assignRequest struct {
	DriverID  string `json:"driver_id"`
	VehicleID string `json:"vehicle_id"`
}

type assignmentEntryResponse struct {
	Driver  driverResponse   `json:"driver"`
	Vehicle *vehicleResponse `json:"vehicle,omitempty"`
}

type assignmentOverviewResponse struct {
	Entries           []assignmentEntryResponse `json:"entries"`
	UnassignedDrivers int                       `json:"unassigned_drivers"`
	OpenVehicles      []vehicleResponse         `json:"open_vehicles"`
}

// AssignmentOverview serves the data behind the assignment screen.
func (h *Handlers) AssignmentOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	overview, err := h.Assignments.GetOverview(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("assignment overview failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	resp := assignmentOverviewResponse{
		Entries:           make([]assignmentEntryResponse, 0, len(overview.Entries)),
		UnassignedDrivers: overview.UnassignedDrivers,
		OpenVehicles:      make([]vehicleResponse, 0, len(overview.OpenVehicles)),
	}
	for _, entry := range overview.Entries {
		out := assignmentEntryResponse{Driver: toDriverResponse(entry.Driver)}
		if entry.Vehicle != nil {
			v := toVehicleResponse(*entry.Vehicle)
			out.Vehicle = &v
		}
		resp.Entries = append(resp.Entries, out)
	}
	for _, v := range overview.OpenVehicles {
		resp.OpenVehicles = append(resp.OpenVehicles, toVehicleResponse(v))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Assign(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if err := h.Assignments.Assign(r.Context(), user.ID, req.DriverID, req.VehicleID); err != nil {
		h.writeAssignmentError(w, "assign failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Unassign(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Assignments.Unassign(r.Context(), user.ID, chi.URLParam(r, "driverID")); err != nil {
		h.writeAssignmentError(w, "unassign failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
