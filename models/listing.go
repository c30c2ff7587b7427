package models

import (
	"time"
)

// Listing is the unified MLS listing row the map engine queries. Rows are
// written by the ingest pipeline; this service only reads them.
type Listing struct {
	ID                    uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ListingID             string    `json:"listingId" gorm:"column:listing_id;index"`
	ListingKey            string    `json:"listingKey" gorm:"column:listing_key;index"`
	Slug                  string    `json:"slug"`
	SlugAddress           string    `json:"slugAddress"`
	StandardStatus        string    `json:"standardStatus" gorm:"index;not null"`
	PropertyType          string    `json:"propertyType" gorm:"index;not null"` // A=sale B=rental C=multifamily D=land
	PropertySubType       string    `json:"propertySubType"`
	Latitude              float64   `json:"latitude" gorm:"index;type:decimal(10,8)"`
	Longitude             float64   `json:"longitude" gorm:"index;type:decimal(11,8)"`
	ListPrice             *float64  `json:"listPrice" gorm:"index"`
	BedroomsTotal         int       `json:"bedroomsTotal"`
	BedsTotal             int       `json:"bedsTotal"`
	BathroomsTotalDecimal float64   `json:"bathroomsTotalDecimal"`
	LivingArea            float64   `json:"livingArea"`
	LotSizeSqft           float64   `json:"lotSizeSqft"`
	YearBuilt             int       `json:"yearBuilt"`
	GarageSpaces          int       `json:"garageSpaces"`
	GarageYn              bool      `json:"garageYn"`
	PoolYn                bool      `json:"poolYn"`
	SpaYn                 bool      `json:"spaYn"`
	ViewYn                bool      `json:"viewYn"`
	GatedCommunityYn      bool      `json:"gatedCommunityYn"`
	SeniorCommunityYn     bool      `json:"seniorCommunityYn"`
	AssociationYn         bool      `json:"associationYn"`
	AssociationFee        float64   `json:"associationFee"`
	Address               string    `json:"address"`
	UnparsedAddress       string    `json:"unparsedAddress"`
	City                  string    `json:"city" gorm:"index"`
	County                string    `json:"county" gorm:"index"`
	SubdivisionName       string    `json:"subdivisionName"`
	LandType              string    `json:"landType"`
	MlsSource             string    `json:"mlsSource" gorm:"index"` // GPS | CRMLS
	PrimaryPhotoURL       string    `json:"primaryPhotoUrl" gorm:"column:primary_photo_url"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
