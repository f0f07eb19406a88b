package dto

import "github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"

// OfficeRequest payload for office creation and renames.
type OfficeRequest struct {
	Name string `json:"name"`
}

// OfficeResponse payload.
type OfficeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromOffice maps an office to its response payload.
func FromOffice(office *domain.Office) OfficeResponse {
	return OfficeResponse{ID: office.ID, Name: office.Name}
}

// FromOffices maps a slice of offices.
func FromOffices(offices []domain.Office) []OfficeResponse {
	out := make([]OfficeResponse, 0, len(offices))
	for i := range offices {
		out = append(out, FromOffice(&offices[i]))
	}
	return out
}
