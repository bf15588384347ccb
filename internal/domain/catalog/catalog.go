// Package catalog holds product, coupon and product link payloads.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a merchant's catalog entry.
type Product struct {
	ProductID      int64             `json:"productId,omitempty"`
	Name           string            `json:"name"`
	Manufacturer   string            `json:"manufacturer,omitempty"`
	ProductionYear int               `json:"productionYear,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	UnitsInStock   int               `json:"unitsInStock"`
	Type           string            `json:"type,omitempty"`
	Description    string            `json:"description,omitempty"`
	PayOnDelivery  bool              `json:"payOnDelivery"`
	Images         []string          `json:"images,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.UnitsInStock > 0
}

// ProductInput is the add or edit product form.
type ProductInput struct {
	Name           string            `json:"name" validate:"required"`
	Manufacturer   string            `json:"manufacturer,omitempty"`
	ProductionYear int               `json:"productionYear,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	UnitsInStock   int               `json:"unitsInStock"`
	Type           string            `json:"type,omitempty"`
	Description    string            `json:"description,omitempty"`
	PayOnDelivery  bool              `json:"payOnDelivery"`
	Images         []string          `json:"images,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// ProductLink is a shareable tracking link for one product.
type ProductLink struct {
	LinkID      int64  `json:"linkId"`
	ProductID   int64  `json:"productId,omitempty"`
	URL         string `json:"url"`
	QRCode      string `json:"qrCode,omitempty"`
	Clicks      int    `json:"clicks"`
	Conversions int    `json:"conversions"`
}

// LinkAnalytics is one recorded visit on a product link.
// Timestamps are kept in the backend's zone-less format.
type LinkAnalytics struct {
	AnalyticsID int64  `json:"analyticsId"`
	Source      string `json:"source,omitempty"`
	Device      string `json:"device,omitempty"`
	Location    string `json:"location,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// AnalyticsRange bounds a link analytics query. Empty dates are omitted.
type AnalyticsRange struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// TrafficSource counts visits per referrer.
type TrafficSource struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Coupon is a discount attached to one merchant product.
type Coupon struct {
	ID         int64           `json:"id"`
	Discount   decimal.Decimal `json:"discount"`
	ValidFrom  string          `json:"validFrom,omitempty"`
	ValidUntil string          `json:"validUntil,omitempty"`
	MaxUsage   int             `json:"maxUsage,omitempty"`
	MaxUsers   int             `json:"maxUsers,omitempty"`
}

// CouponInput is the create coupon form.
type CouponInput struct {
	Discount   decimal.Decimal `json:"discount"`
	ValidFrom  string          `json:"validFrom" validate:"required"`
	ValidUntil string          `json:"validUntil" validate:"required"`
	MaxUsage   int             `json:"maxUsage,omitempty"`
	MaxUsers   int             `json:"maxUsers,omitempty"`
}
