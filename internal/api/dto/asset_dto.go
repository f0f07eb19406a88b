package dto

import (
	"time"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
)

// AssetRequest payload for asset writes.
type AssetRequest struct {
	SerialNumber  string     `json:"serialNumber"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	AssetTypeName string     `json:"assetTypeName"`
	OfficeName    string     `json:"officeName"`
}

// MoveAssetRequest names the destination office for a move.
type MoveAssetRequest struct {
	OfficeName string `json:"officeName"`
}

// AssetResponse payload.
type AssetResponse struct {
	ID            int64      `json:"id"`
	SerialNumber  string     `json:"serialNumber"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	AssetTypeName string     `json:"assetTypeName"`
	OfficeName    string     `json:"officeName"`
}

// AssetDetailResponse adds the installed licenses to an asset.
type AssetDetailResponse struct {
	AssetResponse
	InstalledLicenses []SoftwareLicenseResponse `json:"installedLicenses"`
}

// FromAsset maps an asset to its response payload.
func FromAsset(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:            asset.ID,
		SerialNumber:  asset.SerialNumber,
		PurchaseDate:  asset.PurchaseDate,
		AssetTypeName: asset.AssetTypeName,
		OfficeName:    asset.OfficeName,
	}
}

// FromAssets maps a slice of assets.
func FromAssets(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, FromAsset(&assets[i]))
	}
	return out
}

// FromAssetDetails maps an asset with its licenses.
func FromAssetDetails(details *service.AssetDetails) AssetDetailResponse {
	return AssetDetailResponse{
		AssetResponse:     FromAsset(&details.Asset),
		InstalledLicenses: FromSoftwareLicenses(details.Licenses),
	}
}
