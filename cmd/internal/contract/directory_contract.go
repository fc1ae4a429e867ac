package contract

type AddBusinessRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	OwnerName    string   `json:"owner_name" validate:"max=120"`
	Email        string   `json:"email" validate:"required,email,max=254"`
	Phone        string   `json:"phone" validate:"omitempty,phone"`
	Category     string   `json:"category" validate:"max=60"`
	Description  string   `json:"description" validate:"max=2000"`
	Website      *string  `json:"website" validate:"omitempty,url"`
	Location     string   `json:"location" validate:"required,max=200"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	ZipCode      *string  `json:"zip_code" validate:"omitempty,max=20"`
	State        *string  `json:"state" validate:"omitempty,max=60"`
	City         *string  `json:"city" validate:"omitempty,max=80"`
	IsVerified   bool     `json:"is_verified"`
	IsOnPlatform bool     `json:"is_on_platform"`
}

type ClaimBusinessRequest struct {
	AccountID string `json:"account_id"`
}

type BusinessResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	OwnerName         string   `json:"owner_name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	Website           *string  `json:"website,omitempty"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	ZipCode           *string  `json:"zip_code,omitempty"`
	State             *string  `json:"state,omitempty"`
	City              *string  `json:"city,omitempty"`
	IsVerified        bool     `json:"is_verified"`
	IsOnPlatform      bool     `json:"is_on_platform"`
	AddedByHostID     string   `json:"added_by_host_id"`
	OwnerAccountID    string   `json:"owner_account_id,omitempty"`
	CreatedAt         string   `json:"created_at"`
	InvitationsSent   int      `json:"invitations_sent"`
	SignupConversions int      `json:"signup_conversions"`

	// Only set on distance searches.
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}
