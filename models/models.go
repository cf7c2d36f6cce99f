package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Customer mirrors the host platform's customer table. The affiliate
// service only ever reads from it.
type Customer struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Region mirrors the host platform's region table
type Region struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}

// Discount mirrors the host platform's discount table. A discount is
// eligible for affiliation only when it is restricted to a single region,
// otherwise the commission currency would be ambiguous.
type Discount struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Code      string    `json:"code"`
	Regions   []Region  `gorm:"many2many:discount_regions" json:"regions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order mirrors the host platform's order table
type Order struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	Status    string      `json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem mirrors the host platform's line item table. UnitPrice is in
// minor currency units.
type OrderItem struct {
	ID          string               `gorm:"primaryKey" json:"id"`
	OrderID     string               `gorm:"index" json:"order_id"`
	Title       string               `json:"title"`
	UnitPrice   int64                `json:"unit_price"`
	Quantity    int                  `json:"quantity"`
	Adjustments []LineItemAdjustment `gorm:"foreignKey:ItemID" json:"adjustments,omitempty"`
}

// LineItemAdjustment mirrors the host platform's record of a discount
// applied to a specific order line item
type LineItemAdjustment struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ItemID      string `gorm:"index" json:"item_id"`
	DiscountID  string `gorm:"index" json:"discount_id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}
