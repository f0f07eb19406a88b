package domain

// AssetType categorizes assets. Names are stored in normalized form and are
// unique; the description keeps its original casing.
type AssetType struct {
	ID          int64
	Name        string
	Description *string
}
