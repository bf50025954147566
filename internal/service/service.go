package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/safartours/safarserver/internal/domain"
	"github.com/safartours/safarserver/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrInvalidPackage reports an inquiry for a package that does not
	// exist; the caller picked a bad package, not a missing route.
	ErrInvalidPackage = errors.New("invalid package selected")
)

// Notifier delivers new-lead notifications to subscribed admins. Delivery is
// best effort and must not block or fail inquiry creation.
type Notifier interface {
	NotifyNewInquiry(inq domain.Inquiry)
}

type CatalogService struct {
	packageStorage storage.PackageStorage
	inquiryStorage storage.InquiryStorage
	notifier       Notifier
	log            *logrus.Entry
}

func New(packageStorage storage.PackageStorage, inquiryStorage storage.InquiryStorage, l *logrus.Logger) *CatalogService {
	return &CatalogService{
		packageStorage: packageStorage,
		inquiryStorage: inquiryStorage,
		log:            l.WithField("from", "catalog-service"),
	}
}

// SetNotifier wires the lead notifier after construction. The bot needs the
// service for its catalog commands, so it cannot be passed to New.
func (s *CatalogService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *CatalogService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.packageStorage.ListPackages(ctx)
}

func (s *CatalogService) GetPackage(ctx context.Context, id uuid.UUID) (domain.Package, error) {
	pkg, err := s.packageStorage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Package{}, ErrPackageNotFound
		}
		return domain.Package{}, err
	}
	return pkg, nil
}

func (s *CatalogService) CreatePackage(ctx context.Context, pkg domain.Package) (domain.Package, error) {
	pkg.ID = uuid.New()
	return s.packageStorage.Add(ctx, pkg)
}

func (s *CatalogService) UpdatePackage(ctx context.Context, id uuid.UUID, update domain.PackageUpdate) (domain.Package, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return domain.Package{}, err
	}
	if update.Title != nil {
		pkg.Title = *update.Title
	}
	if update.Description != nil {
		pkg.Description = *update.Description
	}
	if update.Price != nil {
		pkg.Price = *update.Price
	}
	if update.DurationDays != nil {
		pkg.DurationDays = *update.DurationDays
	}
	if update.Itinerary != nil {
		pkg.Itinerary = update.Itinerary
	}
	if update.Images != nil {
		pkg.Images = update.Images
	}
	updated, err := s.packageStorage.Update(ctx, pkg)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Package{}, ErrPackageNotFound
		}
		return domain.Package{}, err
	}
	return updated, nil
}

func (s *CatalogService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	err := s.packageStorage.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrPackageNotFound
	}
	return err
}

// CreateInquiry validates that the referenced package exists, persists the
// lead and notifies subscribers. Notification failures never surface.
func (s *CatalogService) CreateInquiry(ctx context.Context, inq domain.Inquiry) (domain.Inquiry, error) {
	pkg, err := s.packageStorage.Get(ctx, inq.PackageID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Inquiry{}, ErrInvalidPackage
		}
		return domain.Inquiry{}, err
	}
	inq.ID = uuid.New()
	inq.PackageTitle = pkg.Title
	created, err := s.inquiryStorage.AddInquiry(ctx, inq)
	if err != nil {
		return domain.Inquiry{}, err
	}
	created.PackageTitle = pkg.Title
	if s.notifier != nil {
		s.notifier.NotifyNewInquiry(created)
	}
	return created, nil
}

func (s *CatalogService) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	return s.inquiryStorage.ListInquiries(ctx)
}

func (s *CatalogService) DeleteInquiry(ctx context.Context, id uuid.UUID) error {
	err := s.inquiryStorage.DeleteInquiry(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInquiryNotFound
	}
	return err
}
