package handler

import (
	assignmentdomain "fleetdesk-go/internal/domain/assignment"
	driverdomain "fleetdesk-go/internal/domain/driver"
	finedomain "fleetdesk-go/internal/domain/fine"
	paymentdomain "fleetdesk-go/internal/domain/payment"
	vehicledomain "fleetdesk-go/internal/domain/vehicle"
	"fleetdesk-go/internal/supabase"
	"fleetdesk-go/pkg/logger"
)

type Handlers struct {
	Drivers     *driverdomain.Service
	Vehicles    *vehicledomain.Service
	Assignments *assignmentdomain.Service
	Fines       *finedomain.Service
	Payments    *paymentdomain.Service
	Auth        *supabase.AuthClient

	log       logger.Logger
	maxUpload int64
}

func New(
	drivers *driverdomain.Service,
	vehicles *vehicledomain.Service,
	assignments *assignmentdomain.Service,
	fines *finedomain.Service,
	payments *paymentdomain.Service,
	auth *supabase.AuthClient,
	log logger.Logger,
	maxUpload int64,
) *Handlers {
	return &Handlers{
		Drivers:     drivers,
		Vehicles:    vehicles,
		Assignments: assignments,
		Fines:       fines,
		Payments:    payments,
		Auth:        auth,
		log:         log,
		maxUpload:   maxUpload,
	}
}
