package driver

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

const testOwnerID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

type fakeDriverRepo struct {
	drivers  map[string]*Driver
	released []string
	order    []string
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[string]*Driver)}
}

func (r *fakeDriverRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, ownerID, id string) (*Driver, error) {
	d, ok := r.drivers[id]
	if !ok || d.OwnerID != ownerID {
		return nil, ErrDriverNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDriverRepo) First(ctx context.Context, ownerID string) (*Driver, error) {
	for _, id := range r.order {
		d := r.drivers[id]
		if d != nil && d.OwnerID == ownerID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, ErrDriverNotFound
}

func (r *fakeDriverRepo) List(ctx context.Context, ownerID string) ([]Driver, error) {
	out := make([]Driver, 0)
	for _, id := range r.order {
		if d := r.drivers[id]; d != nil && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDriverRepo) Create(ctx context.Context, d *Driver) error {
	copied := *d
	r.drivers[d.ID] = &copied
	r.order = append(r.order, d.ID)
	return nil
}

func (r *fakeDriverRepo) Update(ctx context.Context, d *Driver) error {
	existing, ok := r.drivers[d.ID]
	if !ok || existing.OwnerID != d.OwnerID {
		return ErrDriverNotFound
	}
	copied := *d
	r.drivers[d.ID] = &copied
	return nil
}

func (r *fakeDriverRepo) UpdatePhotoURL(ctx context.Context, ownerID, id, kind, url string) error {
	d, ok := r.drivers[id]
	if !ok || d.OwnerID != ownerID {
		return ErrDriverNotFound
	}
	if kind == PhotoProfile {
		d.ProfilePhotoURL = url
	} else {
		d.LicensePhotoURL = url
	}
	return nil
}

func (r *fakeDriverRepo) Delete(ctx context.Context, ownerID, id string) error {
	d, ok := r.drivers[id]
	if !ok || d.OwnerID != ownerID {
		return ErrDriverNotFound
	}
	delete(r.drivers, id)
	return nil
}

func (r *fakeDriverRepo) ReleaseVehicle(ctx context.Context, ownerID, vehicleID string) error {
	r.released = append(r.released, vehicleID)
	return nil
}

type fakeUploader struct {
	paths []string
	url   string
	err   error
}

func (u *fakeUploader) Upload(ctx context.Context, path, contentType string, size int64, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.paths = append(u.paths, path)
	return u.url, nil
}

func TestCreateDriverSuccess(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := NewService(repo, &fakeUploader{})

	d, err := svc.Create(context.Background(), CreateDriverInput{
		OwnerID:   testOwnerID,
		FirstName: "  Jean ",
		LastName:  "Dupont",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.ID == "" {
		t.Fatalf("expected generated id")
	}
	if d.FirstName != "Jean" {
		t.Fatalf("expected trimmed first name, got %q", d.FirstName)
	}
	if d.Status != StatusActive {
		t.Fatalf("expected default status active, got %q", d.Status)
	}
	if repo.drivers[d.ID] == nil {
		t.Fatalf("driver not stored")
	}
}

func TestCreateDriverMissingName(t *testing.T) {
	svc := NewService(newFakeDriverRepo(), &fakeUploader{})

	_, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean"})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateDriverInvalidStatus(t *testing.T) {
	svc := NewService(newFakeDriverRepo(), &fakeUploader{})

	_, err := svc.Create(context.Background(), CreateDriverInput{
		OwnerID:   testOwnerID,
		FirstName: "Jean",
		LastName:  "Dupont",
		Status:    "fired",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateDriverSuccess(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := NewService(repo, &fakeUploader{})

	d, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateDriverInput{
		ID:        d.ID,
		OwnerID:   testOwnerID,
		FirstName: "Jean",
		LastName:  "Martin",
		Status:    StatusOnLeave,
		Phone:     "0601020304",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.LastName != "Martin" || updated.Status != StatusOnLeave {
		t.Fatalf("update not applied, got %+v", updated)
	}
	if repo.drivers[d.ID].Phone != "0601020304" {
		t.Fatalf("update not stored")
	}
}

func TestUpdateDriverNotFound(t *testing.T) {
	svc := NewService(newFakeDriverRepo(), &fakeUploader{})

	_, err := svc.Update(context.Background(), UpdateDriverInput{
		ID:        "missing",
		OwnerID:   testOwnerID,
		FirstName: "Jean",
		LastName:  "Dupont",
		Status:    StatusActive,
	})
	if !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestDeleteDriverReleasesVehicle(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := NewService(repo, &fakeUploader{})

	d, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	vehicleID := "33333333-3333-3333-3333-333333333333"
	repo.drivers[d.ID].VehicleID = &vehicleID

	if err := svc.Delete(context.Background(), testOwnerID, d.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.drivers[d.ID]; ok {
		t.Fatalf("driver not deleted")
	}
	if len(repo.released) != 1 || repo.released[0] != vehicleID {
		t.Fatalf("expected vehicle released on delete, got %v", repo.released)
	}
}

func TestDeleteDriverWithoutVehicle(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := NewService(repo, &fakeUploader{})

	d, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), testOwnerID, d.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.released) != 0 {
		t.Fatalf("no vehicle to release, got %v", repo.released)
	}
}

func TestAttachPhotoSuccess(t *testing.T) {
	repo := newFakeDriverRepo()
	store := &fakeUploader{url: "https://cdn.example/photo.jpg"}
	svc := NewService(repo, store)

	d, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.AttachPhoto(context.Background(), testOwnerID, d.ID, PhotoUpload{
		Kind:        PhotoProfile,
		Filename:    "me.JPG",
		ContentType: "image/jpeg",
		Size:        1024,
	}, strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.ProfilePhotoURL != store.url {
		t.Fatalf("expected photo url on driver, got %q", updated.ProfilePhotoURL)
	}
	if len(store.paths) != 1 || !strings.HasPrefix(store.paths[0], PhotoProfile+"/") {
		t.Fatalf("expected upload under the kind prefix, got %v", store.paths)
	}
	if !strings.HasSuffix(store.paths[0], ".jpg") {
		t.Fatalf("expected lowercase extension, got %v", store.paths)
	}
	if repo.drivers[d.ID].ProfilePhotoURL != store.url {
		t.Fatalf("photo url not stored")
	}
}

func TestAttachPhotoInvalidKind(t *testing.T) {
	svc := NewService(newFakeDriverRepo(), &fakeUploader{})

	_, err := svc.AttachPhoto(context.Background(), testOwnerID, "any", PhotoUpload{
		Kind:        "selfie",
		ContentType: "image/png",
	}, strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidPhotoKind) {
		t.Fatalf("expected ErrInvalidPhotoKind, got %v", err)
	}
}

func TestAttachPhotoRejectsNonImage(t *testing.T) {
	svc := NewService(newFakeDriverRepo(), &fakeUploader{})

	_, err := svc.AttachPhoto(context.Background(), testOwnerID, "any", PhotoUpload{
		Kind:        PhotoLicense,
		ContentType: "application/pdf",
	}, strings.NewReader("x"))
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestFirstReturnsOldestDriver(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := NewService(repo, &fakeUploader{})

	first, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Jean", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateDriverInput{OwnerID: testOwnerID, FirstName: "Marie", LastName: "Curie"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.First(context.Background(), testOwnerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected oldest driver, got %q", got.ID)
	}
}
