package controllers

import (
	"github.com/StoreSphere/affiliate-discount/services"
)

// AffiliateLedger is the slice of the affiliate discount service the HTTP
// handlers need
type AffiliateLedger interface {
	CreateRecord(customerID, discountID string, commission float64) (*services.Record, error)
	ListByCustomer(customerID string, limit, offset int) ([]services.Record, error)
	ListByDiscount(discountID string, limit, offset int) ([]services.Record, error)
	ListAll() ([]services.Record, error)
	DeleteRecord(id string, hard bool) error
}

var ledger AffiliateLedger

// InitAffiliateControllers wires the ledger service into the handlers
func InitAffiliateControllers(l AffiliateLedger) {
	ledger = l
}
