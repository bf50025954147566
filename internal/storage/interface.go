package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/safartours/safarserver/internal/domain"
)

var ErrNotFound = errors.New("not found")

type PackageStorage interface {
	ListPackages(ctx context.Context) ([]domain.Package, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Package, error)
	Add(ctx context.Context, pkg domain.Package) (domain.Package, error)
	Update(ctx context.Context, pkg domain.Package) (domain.Package, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InquiryStorage interface {
	ListInquiries(ctx context.Context) ([]domain.Inquiry, error)
	AddInquiry(ctx context.Context, inq domain.Inquiry) (domain.Inquiry, error)
	DeleteInquiry(ctx context.Context, id uuid.UUID) error
}
