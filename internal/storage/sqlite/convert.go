package sqlite

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/safartours/safarserver/gen/model"
	"github.com/safartours/safarserver/internal/domain"
)

func convertPackages(dbPackages []model.Packages) ([]domain.Package, error) {
	packages := make([]domain.Package, 0, len(dbPackages))
	for i := range dbPackages {
		pkg, err := convertPackage(dbPackages[i])
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func convertPackage(dbPackage model.Packages) (domain.Package, error) {
	id, err := uuid.Parse(dbPackage.ID)
	if err != nil {
		return domain.Package{}, err
	}
	itinerary, err := decodeStrings(dbPackage.Itinerary)
	if err != nil {
		return domain.Package{}, err
	}
	images, err := decodeStrings(dbPackage.Images)
	if err != nil {
		return domain.Package{}, err
	}
	return domain.Package{
		ID:           id,
		Title:        dbPackage.Title,
		Description:  dbPackage.Description,
		Price:        dbPackage.Price,
		DurationDays: int(dbPackage.DurationDays),
		Itinerary:    itinerary,
		Images:       images,
		CreatedAt:    dbPackage.CreatedAt,
		UpdatedAt:    dbPackage.UpdatedAt,
	}, nil
}

func convertPackageFromDomain(pkg domain.Package) (model.Packages, error) {
	itinerary, err := encodeStrings(pkg.Itinerary)
	if err != nil {
		return model.Packages{}, err
	}
	images, err := encodeStrings(pkg.Images)
	if err != nil {
		return model.Packages{}, err
	}
	return model.Packages{
		ID:           pkg.ID.String(),
		Title:        pkg.Title,
		Description:  pkg.Description,
		Price:        pkg.Price,
		DurationDays: int32(pkg.DurationDays),
		Itinerary:    itinerary,
		Images:       images,
		CreatedAt:    pkg.CreatedAt,
		UpdatedAt:    pkg.UpdatedAt,
	}, nil
}

func convertInquiry(dbInquiry model.Inquiries, packageTitle string) (domain.Inquiry, error) {
	id, err := uuid.Parse(dbInquiry.ID)
	if err != nil {
		return domain.Inquiry{}, err
	}
	packageID, err := uuid.Parse(dbInquiry.PackageID)
	if err != nil {
		return domain.Inquiry{}, err
	}
	return domain.Inquiry{
		ID:           id,
		Name:         dbInquiry.Name,
		Email:        dbInquiry.Email,
		Phone:        dbInquiry.Phone,
		Message:      dbInquiry.Message,
		PackageID:    packageID,
		PackageTitle: packageTitle,
		CreatedAt:    dbInquiry.CreatedAt,
	}, nil
}

func convertInquiryFromDomain(inq domain.Inquiry) model.Inquiries {
	return model.Inquiries{
		ID:        inq.ID.String(),
		Name:      inq.Name,
		Email:     inq.Email,
		Phone:     inq.Phone,
		Message:   inq.Message,
		PackageID: inq.PackageID.String(),
		CreatedAt: inq.CreatedAt,
	}
}

// Itinerary and images are stored as JSON arrays in text columns.

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStrings(data string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
