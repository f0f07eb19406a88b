package dto

import (
	"time"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// SoftwareLicenseRequest payload for license writes.
type SoftwareLicenseRequest struct {
	SoftwareName     string    `json:"softwareName"`
	MaxInstallations *int32    `json:"maxInstallations"`
	ExpirationDate   time.Time `json:"expirationDate"`
}

// SoftwareLicenseResponse payload.
type SoftwareLicenseResponse struct {
	ID               int64     `json:"id"`
	SoftwareName     string    `json:"softwareName"`
	MaxInstallations *int32    `json:"maxInstallations"`
	ExpirationDate   time.Time `json:"expirationDate"`
}

// FromSoftwareLicense maps a license to its response payload.
func FromSoftwareLicense(license *domain.SoftwareLicense) SoftwareLicenseResponse {
	return SoftwareLicenseResponse{
		ID:               license.ID,
		SoftwareName:     license.SoftwareName,
		MaxInstallations: license.MaxInstallations,
		ExpirationDate:   license.ExpirationDate,
	}
}

// FromSoftwareLicenses maps a slice of licenses.
func FromSoftwareLicenses(licenses []domain.SoftwareLicense) []SoftwareLicenseResponse {
	out := make([]SoftwareLicenseResponse, 0, len(licenses))
	for i := range licenses {
		out = append(out, FromSoftwareLicense(&licenses[i]))
	}
	return out
}
