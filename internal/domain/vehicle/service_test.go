package vehicle

import (
	"context"
	"errors"
	"testing"
)

const testOwnerID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

type fakeVehicleRepo struct {
	vehicles map[string]*Vehicle
	cleared  []string
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*Vehicle)}
}

func (r *fakeVehicleRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, ownerID, id string) (*Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok || v.OwnerID != ownerID {
		return nil, ErrVehicleNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, ownerID string, filter ListFilter) ([]Vehicle, error) {
	out := make([]Vehicle, 0)
	for _, v := range r.vehicles {
		if v.OwnerID != ownerID {
			continue
		}
		if filter.AvailableOnly && !IsAvailable(*v) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *Vehicle) error {
	copied := *v
	r.vehicles[v.ID] = &copied
	return nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, v *Vehicle) error {
	existing, ok := r.vehicles[v.ID]
	if !ok || existing.OwnerID != v.OwnerID {
		return ErrVehicleNotFound
	}
	copied := *v
	r.vehicles[v.ID] = &copied
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, ownerID, id string) error {
	v, ok := r.vehicles[id]
	if !ok || v.OwnerID != ownerID {
		return ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) ClearDriverReferences(ctx context.Context, ownerID, vehicleID string) error {
	r.cleared = append(r.cleared, vehicleID)
	return nil
}

func TestCreateVehicleSuccess(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := NewService(repo)

	v, err := svc.Create(context.Background(), CreateVehicleInput{
		OwnerID: testOwnerID,
		Plate:   " AB-123-CD ",
		Model:   "Renault Clio",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v.Plate != "AB-123-CD" {
		t.Fatalf("expected trimmed plate, got %q", v.Plate)
	}
	if v.Status != StatusAvailable {
		t.Fatalf("expected default status available, got %q", v.Status)
	}
	if repo.vehicles[v.ID] == nil {
		t.Fatalf("vehicle not stored")
	}
}

func TestCreateVehicleMissingPlate(t *testing.T) {
	svc := NewService(newFakeVehicleRepo())

	_, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "  "})
	if !errors.Is(err, ErrPlateRequired) {
		t.Fatalf("expected ErrPlateRequired, got %v", err)
	}
}

func TestCreateVehicleInvalidStatus(t *testing.T) {
	svc := NewService(newFakeVehicleRepo())

	_, err := svc.Create(context.Background(), CreateVehicleInput{
		OwnerID: testOwnerID,
		Plate:   "AB-123-CD",
		Status:  "parked",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateVehicleSuccess(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := NewService(repo)

	v, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "AB-123-CD"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateVehicleInput{
		ID:      v.ID,
		OwnerID: testOwnerID,
		Plate:   "EF-456-GH",
		Status:  StatusMaintenance,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Plate != "EF-456-GH" || updated.Status != StatusMaintenance {
		t.Fatalf("update not applied, got %+v", updated)
	}
}

func TestUpdateVehicleNotFound(t *testing.T) {
	svc := NewService(newFakeVehicleRepo())

	_, err := svc.Update(context.Background(), UpdateVehicleInput{
		ID:      "missing",
		OwnerID: testOwnerID,
		Plate:   "AB-123-CD",
		Status:  StatusAvailable,
	})
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestDeleteVehicleClearsDriverReferences(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := NewService(repo)

	v, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "AB-123-CD"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), testOwnerID, v.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.vehicles[v.ID]; ok {
		t.Fatalf("vehicle not deleted")
	}
	if len(repo.cleared) != 1 || repo.cleared[0] != v.ID {
		t.Fatalf("expected driver references cleared, got %v", repo.cleared)
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := NewService(repo)

	err := svc.Delete(context.Background(), testOwnerID, "missing")
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	if len(repo.cleared) != 0 {
		t.Fatalf("missing vehicle must not clear references")
	}
}

func TestListAvailableOnly(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := NewService(repo)

	available, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "AB-123-CD"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "EF-456-GH", Status: StatusMaintenance}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateVehicleInput{OwnerID: testOwnerID, Plate: "IJ-789-KL", Status: StatusAssigned}); err != nil {
		t.Fatalf("create: %v", err)
	}

	vehicles, err := svc.List(context.Background(), testOwnerID, ListFilter{AvailableOnly: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != available.ID {
		t.Fatalf("expected only the available vehicle, got %+v", vehicles)
	}
}
