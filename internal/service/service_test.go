package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/safartours/safarserver/internal/domain"
	"github.com/safartours/safarserver/internal/storage"
	"github.com/sirupsen/logrus"
)

type memStorage struct {
	packages  map[uuid.UUID]domain.Package
	inquiries map[uuid.UUID]domain.Inquiry
}

func newMemStorage() *memStorage {
	return &memStorage{
		packages:  make(map[uuid.UUID]domain.Package),
		inquiries: make(map[uuid.UUID]domain.Inquiry),
	}
}

func (m *memStorage) ListPackages(_ context.Context) ([]domain.Package, error) {
	list := make([]domain.Package, 0, len(m.packages))
	for _, p := range m.packages {
		list = append(list, p)
	}
	return list, nil
}

func (m *memStorage) Get(_ context.Context, id uuid.UUID) (domain.Package, error) {
	pkg, ok := m.packages[id]
	if !ok {
		return domain.Package{}, storage.ErrNotFound
	}
	return pkg, nil
}

func (m *memStorage) Add(_ context.Context, pkg domain.Package) (domain.Package, error) {
	m.packages[pkg.ID] = pkg
	return pkg, nil
}

func (m *memStorage) Update(_ context.Context, pkg domain.Package) (domain.Package, error) {
	if _, ok := m.packages[pkg.ID]; !ok {
		return domain.Package{}, storage.ErrNotFound
	}
	m.packages[pkg.ID] = pkg
	return pkg, nil
}

func (m *memStorage) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.packages[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.packages, id)
	return nil
}

func (m *memStorage) ListInquiries(_ context.Context) ([]domain.Inquiry, error) {
	list := make([]domain.Inquiry, 0, len(m.inquiries))
	for _, inq := range m.inquiries {
		list = append(list, inq)
	}
	return list, nil
}

func (m *memStorage) AddInquiry(_ context.Context, inq domain.Inquiry) (domain.Inquiry, error) {
	m.inquiries[inq.ID] = inq
	return inq, nil
}

func (m *memStorage) DeleteInquiry(_ context.Context, id uuid.UUID) error {
	if _, ok := m.inquiries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.inquiries, id)
	return nil
}

type fakeNotifier struct {
	notified []domain.Inquiry
}

func (f *fakeNotifier) NotifyNewInquiry(inq domain.Inquiry) {
	f.notified = append(f.notified, inq)
}

func newTestService() (*CatalogService, *memStorage) {
	store := newMemStorage()
	return New(store, store, logrus.New()), store
}

func TestCreateInquiry(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)

	pkg, err := svc.CreatePackage(ctx, domain.Package{Title: "Ramadan Umrah"})
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}

	inq, err := svc.CreateInquiry(ctx, domain.Inquiry{
		Name:      "Ali",
		Email:     "ali@example.com",
		Phone:     "+966500000000",
		Message:   "Family of four",
		PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("CreateInquiry() error = %v", err)
	}
	if inq.PackageTitle != "Ramadan Umrah" {
		t.Errorf("PackageTitle = %q, want %q", inq.PackageTitle, "Ramadan Umrah")
	}
	if len(notifier.notified) != 1 {
		t.Fatalf("notifier fired %d times, want 1", len(notifier.notified))
	}
	if notifier.notified[0].ID != inq.ID {
		t.Errorf("notified inquiry ID = %v, want %v", notifier.notified[0].ID, inq.ID)
	}
}

func TestCreateInquiry_unknownPackage(t *testing.T) {
	svc, _ := newTestService()
	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)

	_, err := svc.CreateInquiry(context.Background(), domain.Inquiry{
		Name:      "Ali",
		PackageID: uuid.New(),
	})
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("CreateInquiry() error = %v, want ErrInvalidPackage", err)
	}
	if len(notifier.notified) != 0 {
		t.Errorf("notifier fired %d times, want 0", len(notifier.notified))
	}
}

func TestCreateInquiry_noNotifier(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	pkg, err := svc.CreatePackage(ctx, domain.Package{Title: "Hajj 2027"})
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}
	if _, err := svc.CreateInquiry(ctx, domain.Inquiry{Name: "Ali", PackageID: pkg.ID}); err != nil {
		t.Errorf("CreateInquiry() without notifier error = %v", err)
	}
}

func TestUpdatePackage(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	pkg, err := svc.CreatePackage(ctx, domain.Package{
		Title:        "Ramadan Umrah",
		Price:        2500,
		DurationDays: 10,
		Itinerary:    []string{"Jeddah", "Makkah"},
	})
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}

	newPrice := 2750.0
	updated, err := svc.UpdatePackage(ctx, pkg.ID, domain.PackageUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdatePackage() error = %v", err)
	}
	if updated.Price != newPrice {
		t.Errorf("Price = %v, want %v", updated.Price, newPrice)
	}
	if updated.Title != pkg.Title {
		t.Errorf("Title changed to %q on partial update", updated.Title)
	}
	if len(updated.Itinerary) != 2 {
		t.Errorf("Itinerary changed on partial update: %v", updated.Itinerary)
	}
}

func TestUpdatePackage_missing(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdatePackage(context.Background(), uuid.New(), domain.PackageUpdate{})
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("UpdatePackage() error = %v, want ErrPackageNotFound", err)
	}
}

func TestDeletePackage_missing(t *testing.T) {
	svc, _ := newTestService()
	err := svc.DeletePackage(context.Background(), uuid.New())
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("DeletePackage() error = %v, want ErrPackageNotFound", err)
	}
}

func TestDeleteInquiry_missing(t *testing.T) {
	svc, _ := newTestService()
	err := svc.DeleteInquiry(context.Background(), uuid.New())
	if !errors.Is(err, ErrInquiryNotFound) {
		t.Errorf("DeleteInquiry() error = %v, want ErrInquiryNotFound", err)
	}
}
