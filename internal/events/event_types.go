package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssetCreated       EventType = "asset_created"
	EventAssetUpdated       EventType = "asset_updated"
	EventAssetMoved         EventType = "asset_moved"
	EventAssetDeleted       EventType = "asset_deleted"
	EventLicenseInstalled   EventType = "license_installed"
	EventLicenseUninstalled EventType = "license_uninstalled"
)

// Event represents an inventory mutation emitted by services. Actor is the
// authenticated subject that performed the change; Resource is the natural
// key of the touched record (serial number or software name).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Resource  string      `json:"resource"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AssetMovedPayload payload.
type AssetMovedPayload struct {
	FromOffice string `json:"from_office"`
	ToOffice   string `json:"to_office"`
}

// LicenseInstallPayload payload for install and uninstall events.
type LicenseInstallPayload struct {
	SoftwareName string `json:"software_name"`
	SerialNumber string `json:"serial_number"`
}
