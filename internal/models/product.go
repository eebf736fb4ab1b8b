package models

import (
	"math"
	"time"
)

// Diamond grading catalogs. These are closed sets: the admin UI offers
// exactly these values and validation rejects anything else.
var (
	ShapeOptions = []string{
		"Round Brilliant", "Princess", "Emerald", "Oval", "Cushion",
		"Marquise", "Pear", "Asscher", "Radiant", "Heart",
	}
	ColorOptions   = []string{"D", "E", "F", "G", "H", "I", "J", "K", "L", "M"}
	ClarityOptions = []string{"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1", "I2", "I3"}
	CutOptions     = []string{"Excellent", "Very Good", "Good", "Fair", "Poor"}

	CertificationOptions = []string{"GIA", "AGS", "EGL", "GSI", "IGI", "GCAL"}
)

const (
	StockAvailable = "Available"
	StockSoldOut   = "Sold Out"
)

var StockStatusOptions = []string{StockAvailable, StockSoldOut}

// Product is a diamond in inventory. DateAdded is a calendar date
// (YYYY-MM-DD) fixed at creation time.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;size:36"`
	Shape         string  `json:"shape" gorm:"not null;index"`
	CaratWeight   float64 `json:"caratWeight" gorm:"not null"`
	Color         string  `json:"color" gorm:"size:1;not null;index"`
	Clarity       string  `json:"clarity" gorm:"size:5;not null;index"`
	Cut           string  `json:"cut" gorm:"not null"`
	Certification string  `json:"certification" gorm:"size:5;not null;index"`
	PricePerCarat float64 `json:"pricePerCarat" gorm:"not null"`
	TotalPrice    float64 `json:"totalPrice" gorm:"not null;index"`
	StockStatus   string  `json:"stockStatus" gorm:"not null;default:'Available'"`
	Image         string  `json:"image"`
	DateAdded     string  `json:"dateAdded" gorm:"size:10;not null"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PriceMode selects which of the two price fields the user edits; the
// other one is always derived.
type PriceMode string

const (
	PricePerCarat PriceMode = "perCarat"
	PriceTotal    PriceMode = "total"
)

var PriceModeOptions = []string{string(PricePerCarat), string(PriceTotal)}

// DerivePricing recomputes the dependent half of the price pair and
// returns (pricePerCarat, totalPrice), both rounded to 2 decimals.
// In perCarat mode totalPrice = caratWeight * pricePerCarat; in total
// mode pricePerCarat = totalPrice / caratWeight. A non-positive carat
// weight skips the recomputation entirely so a half-filled form can
// never produce NaN or Inf.
func DerivePricing(mode PriceMode, caratWeight, pricePerCarat, totalPrice float64) (float64, float64) {
	if caratWeight <= 0 {
		return pricePerCarat, totalPrice
	}
	if mode == PriceTotal {
		return round2(totalPrice / caratWeight), round2(totalPrice)
	}
	return round2(pricePerCarat), round2(caratWeight * pricePerCarat)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Today returns the current calendar date in the storage format.
func Today() string { return time.Now().Format(time.DateOnly) }
