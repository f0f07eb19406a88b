package dto

import "github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"

// AssetTypeRequest payload for asset type writes.
type AssetTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// AssetTypeResponse payload.
type AssetTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// FromAssetType maps an asset type to its response payload.
func FromAssetType(assetType *domain.AssetType) AssetTypeResponse {
	return AssetTypeResponse{
		ID:          assetType.ID,
		Name:        assetType.Name,
		Description: assetType.Description,
	}
}

// FromAssetTypes maps a slice of asset types.
func FromAssetTypes(assetTypes []domain.AssetType) []AssetTypeResponse {
	out := make([]AssetTypeResponse, 0, len(assetTypes))
	for i := range assetTypes {
		out = append(out, FromAssetType(&assetTypes[i]))
	}
	return out
}
