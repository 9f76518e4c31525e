// internal/application/query/storefront/dto/catalog_dto.go
package dto

// StoreCardDTO is one row on the browse-stores screens.
type StoreCardDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Opening            string  `json:"opening"`
	Closing            string  `json:"closing"`
	IsGreenParticipant bool    `json:"isGreenParticipant"`
	OpenNow            bool    `json:"openNow"`
	AverageRating      float64 `json:"averageRating"`
	ReviewCount        int     `json:"reviewCount"`
}

// ListingDTO is one sellable item on the store detail screen.
// UnitPrice is in minor units.
type ListingDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	InStock     bool   `json:"inStock"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// StoreDetailDTO is the store detail screen payload.
type StoreDetailDTO struct {
	StoreCardDTO
	Listings []ListingDTO `json:"listings"`
}
