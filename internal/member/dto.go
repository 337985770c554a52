package member

import "time"

type GetProfileResponse struct {
	ID             uint32    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      *uint32   `json:"createdBy,omitempty"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
	LastModifiedBy *uint32   `json:"lastModifiedBy,omitempty"`
}

// UpdateProfileRequest only changes the fields that are present
type UpdateProfileRequest struct {
	Name        *string `json:"name" binding:"omitnil,notblank,max=20"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitnil,phone"`
}
