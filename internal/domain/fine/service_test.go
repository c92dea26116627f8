package fine

import (
	"context"
	"errors"
	"testing"
	"time"
)

const (
	testOwnerID  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testDriverID = "11111111-1111-1111-1111-111111111111"
)

type fakeFineRepo struct {
	fines   map[string]*Fine
	drivers map[string]bool
}

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{
		fines:   make(map[string]*Fine),
		drivers: make(map[string]bool),
	}
}

func (r *fakeFineRepo) GetByID(ctx context.Context, ownerID, id string) (*Fine, error) {
	f, ok := r.fines[id]
	if !ok || f.OwnerID != ownerID {
		return nil, ErrFineNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFineRepo) List(ctx context.Context, ownerID string) ([]FineWithDriver, error) {
	out := make([]FineWithDriver, 0)
	for _, f := range r.fines {
		if f.OwnerID == ownerID {
			out = append(out, FineWithDriver{Fine: *f})
		}
	}
	return out, nil
}

func (r *fakeFineRepo) Create(ctx context.Context, f *Fine) error {
	copied := *f
	r.fines[f.ID] = &copied
	return nil
}

func (r *fakeFineRepo) Update(ctx context.Context, f *Fine) error {
	existing, ok := r.fines[f.ID]
	if !ok || existing.OwnerID != f.OwnerID {
		return ErrFineNotFound
	}
	copied := *f
	r.fines[f.ID] = &copied
	return nil
}

func (r *fakeFineRepo) Delete(ctx context.Context, ownerID, id string) error {
	f, ok := r.fines[id]
	if !ok || f.OwnerID != ownerID {
		return ErrFineNotFound
	}
	delete(r.fines, id)
	return nil
}

func (r *fakeFineRepo) DriverExists(ctx context.Context, ownerID, driverID string) (bool, error) {
	return r.drivers[ownerID+"/"+driverID], nil
}

func validInput() CreateFineInput {
	return CreateFineInput{
		OwnerID:      testOwnerID,
		IssuedOn:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Place:        "Blois",
		Amount:       90,
		VehiclePlate: "AB-123-CD",
		Nature:       "Excès de vitesse",
	}
}

func TestCreateFineSuccess(t *testing.T) {
	repo := newFakeFineRepo()
	svc := NewService(repo)

	f, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.ID == "" {
		t.Fatalf("expected generated id")
	}
	if f.DriverID != nil {
		t.Fatalf("expected no driver link, got %v", f.DriverID)
	}
	if repo.fines[f.ID] == nil {
		t.Fatalf("fine not stored")
	}
}

func TestCreateFineWithDriver(t *testing.T) {
	repo := newFakeFineRepo()
	repo.drivers[testOwnerID+"/"+testDriverID] = true
	svc := NewService(repo)

	input := validInput()
	id := testDriverID
	input.DriverID = &id

	f, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.DriverID == nil || *f.DriverID != testDriverID {
		t.Fatalf("expected driver link, got %v", f.DriverID)
	}
}

func TestCreateFineUnknownDriver(t *testing.T) {
	svc := NewService(newFakeFineRepo())

	input := validInput()
	id := testDriverID
	input.DriverID = &id

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestCreateFineEmptyDriverBecomesNil(t *testing.T) {
	svc := NewService(newFakeFineRepo())

	input := validInput()
	blank := "   "
	input.DriverID = &blank

	f, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.DriverID != nil {
		t.Fatalf("expected blank driver id normalized to nil, got %v", f.DriverID)
	}
}

func TestCreateFineValidation(t *testing.T) {
	svc := NewService(newFakeFineRepo())

	cases := []struct {
		name    string
		mutate  func(*CreateFineInput)
		wantErr error
	}{
		{"missing date", func(in *CreateFineInput) { in.IssuedOn = time.Time{} }, ErrDateRequired},
		{"missing place", func(in *CreateFineInput) { in.Place = " " }, ErrPlaceRequired},
		{"missing plate", func(in *CreateFineInput) { in.VehiclePlate = "" }, ErrPlateRequired},
		{"missing nature", func(in *CreateFineInput) { in.Nature = "" }, ErrNatureRequired},
		{"negative amount", func(in *CreateFineInput) { in.Amount = -1 }, ErrNegativeAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateFineSuccess(t *testing.T) {
	repo := newFakeFineRepo()
	svc := NewService(repo)

	f, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateFineInput{
		ID:           f.ID,
		OwnerID:      testOwnerID,
		IssuedOn:     f.IssuedOn,
		Place:        "Tours",
		Amount:       135,
		VehiclePlate: f.VehiclePlate,
		Nature:       "Stationnement gênant",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Place != "Tours" || updated.Amount != 135 {
		t.Fatalf("update not applied, got %+v", updated)
	}
}

func TestUpdateFineNotFound(t *testing.T) {
	svc := NewService(newFakeFineRepo())

	_, err := svc.Update(context.Background(), UpdateFineInput{
		ID:           "missing",
		OwnerID:      testOwnerID,
		IssuedOn:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Place:        "Blois",
		Amount:       90,
		VehiclePlate: "AB-123-CD",
		Nature:       "Excès de vitesse",
	})
	if !errors.Is(err, ErrFineNotFound) {
		t.Fatalf("expected ErrFineNotFound, got %v", err)
	}
}

func TestDeleteFineCrossOwnerHidden(t *testing.T) {
	repo := newFakeFineRepo()
	svc := NewService(repo)

	f, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Delete(context.Background(), "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", f.ID)
	if !errors.Is(err, ErrFineNotFound) {
		t.Fatalf("expected ErrFineNotFound for foreign owner, got %v", err)
	}
	if repo.fines[f.ID] == nil {
		t.Fatalf("fine must survive a foreign delete")
	}
}
