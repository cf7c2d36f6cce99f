package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateDiscount ties a customer and a discount code to a commission
// rate together with running usage and earnings totals. Earnings are kept
// in minor currency units of the snapshotted currency.
type AffiliateDiscount struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	CustomerID   string         `gorm:"index:idx_affiliate_pair" json:"customer_id"`
	DiscountID   string         `gorm:"index:idx_affiliate_pair" json:"discount_id"`
	Commission   int            `json:"commission"` // whole percentage, 1-100
	UsageCount   int64          `gorm:"default:0" json:"usage_count"`
	Earnings     int64          `gorm:"default:0" json:"earnings"`
	CurrencyCode string         `json:"currency_code"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
