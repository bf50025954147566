package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/safartours/safarserver/gen/model"
	"github.com/safartours/safarserver/gen/table"
	"github.com/safartours/safarserver/internal/config"
	"github.com/safartours/safarserver/internal/domain"
	sqlite3 "github.com/safartours/safarserver/internal/migrate"
	"github.com/safartours/safarserver/internal/storage"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.PackageStorage = (*Storage)(nil)
var _ storage.InquiryStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.Server) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "catalog-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpServerDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("catalog storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) ListPackages(ctx context.Context) ([]domain.Package, error) {
	var dbPackages []model.Packages
	err := table.Packages.
		SELECT(table.Packages.AllColumns).
		FROM(table.Packages).
		ORDER_BY(table.Packages.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &dbPackages)
	if err != nil {
		return nil, err
	}
	return convertPackages(dbPackages)
}

func (s *Storage) Get(ctx context.Context, id uuid.UUID) (domain.Package, error) {
	var dbPackage model.Packages
	err := table.Packages.
		SELECT(table.Packages.AllColumns).
		FROM(table.Packages).
		WHERE(table.Packages.ID.EQ(sqlite.String(id.String()))).
		QueryContext(ctx, s.db, &dbPackage)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Package{}, storage.ErrNotFound
		}
		return domain.Package{}, err
	}
	return convertPackage(dbPackage)
}

func (s *Storage) Add(ctx context.Context, pkg domain.Package) (domain.Package, error) {
	now := time.Now()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	dbPackage, err := convertPackageFromDomain(pkg)
	if err != nil {
		return domain.Package{}, err
	}
	_, err = table.Packages.
		INSERT(table.Packages.MutableColumns, table.Packages.ID).
		MODEL(dbPackage).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.Package{}, err
	}
	return pkg, nil
}

func (s *Storage) Update(ctx context.Context, pkg domain.Package) (domain.Package, error) {
	pkg.UpdatedAt = time.Now()
	dbPackage, err := convertPackageFromDomain(pkg)
	if err != nil {
		return domain.Package{}, err
	}
	res, err := table.Packages.
		UPDATE(table.Packages.MutableColumns.Except(table.Packages.CreatedAt)).
		MODEL(dbPackage).
		WHERE(table.Packages.ID.EQ(sqlite.String(pkg.ID.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.Package{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Package{}, err
	}
	if affected == 0 {
		return domain.Package{}, storage.ErrNotFound
	}
	return pkg, nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := table.Packages.
		DELETE().
		WHERE(table.Packages.ID.EQ(sqlite.String(id.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	var dest []struct {
		model.Inquiries
		Packages model.Packages
	}
	err := table.Inquiries.
		SELECT(table.Inquiries.AllColumns, table.Packages.Title).
		FROM(table.Inquiries.
			LEFT_JOIN(table.Packages, table.Packages.ID.EQ(table.Inquiries.PackageID))).
		ORDER_BY(table.Inquiries.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	inquiries := make([]domain.Inquiry, 0, len(dest))
	for i := range dest {
		inq, err := convertInquiry(dest[i].Inquiries, dest[i].Packages.Title)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, nil
}

func (s *Storage) AddInquiry(ctx context.Context, inq domain.Inquiry) (domain.Inquiry, error) {
	inq.CreatedAt = time.Now()
	_, err := table.Inquiries.
		INSERT(table.Inquiries.MutableColumns, table.Inquiries.ID).
		MODEL(convertInquiryFromDomain(inq)).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.Inquiry{}, err
	}
	return inq, nil
}

func (s *Storage) DeleteInquiry(ctx context.Context, id uuid.UUID) error {
	res, err := table.Inquiries.
		DELETE().
		WHERE(table.Inquiries.ID.EQ(sqlite.String(id.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
