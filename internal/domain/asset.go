package domain

import "time"

// Asset is a tracked inventory item. Every asset belongs to exactly one
// office and one asset type; serial numbers are normalized and unique.
type Asset struct {
	ID            int64
	SerialNumber  string
	PurchaseDate  *time.Time
	AssetTypeID   int64
	AssetTypeName string
	OfficeID      int64
	OfficeName    string
}
