package domain

import "time"

// PropertyStatus tracks where a listing is in its lifecycle.
type PropertyStatus string

const (
	PropertyListed PropertyStatus = "listed"
	PropertySold   PropertyStatus = "sold"
)

type Property struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Price       int64          `json:"price"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	AreaSqft    int            `json:"area_sqft"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
