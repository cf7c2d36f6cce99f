package services

import (
	"fmt"
	"math"

	"github.com/StoreSphere/affiliate-discount/models"
	"github.com/StoreSphere/affiliate-discount/utils"
)

// Record is the enriched view of an affiliate discount returned by the
// admin API: the ledger row joined with the customer email and discount
// code for display.
type Record struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customerId"`
	CustomerEmail string `json:"customerEmail"`
	DiscountID    string `json:"discountId"`
	DiscountCode  string `json:"discountCode"`
	Commission    int    `json:"commission"`
	UsageCount    int64  `json:"usageCount"`
	Earnings      int64  `json:"earnings"`
	CurrencyCode  string `json:"currencyCode"`
}

// AdjustmentItem is one discounted line item of a completed order. The
// total is the pre-discount line value (unit price times quantity) in
// minor currency units.
type AdjustmentItem struct {
	DiscountID     string
	UnitPriceTotal int64
}

// Repository is the persistence port for the affiliate ledger. "Active"
// always means not soft-deleted.
type Repository interface {
	CountActiveByPair(customerID, discountID string) (int64, error)
	Create(record *models.AffiliateDiscount) error
	FindByID(id string) (*models.AffiliateDiscount, error)
	ListByCustomer(customerID string, limit, offset int) ([]Record, error)
	ListByDiscount(discountID string, limit, offset int) ([]Record, error)
	ListAll() ([]Record, error)
	SoftDelete(id string) error
	HardDelete(id string) error
	ListActiveByDiscountIDs(discountIDs []string) ([]models.AffiliateDiscount, error)
	IncrementTotals(id string, earnings int64) (*models.AffiliateDiscount, error)
	FindCustomer(id string) (*models.Customer, error)
	FindDiscountWithRegions(id string) (*models.Discount, error)
}

// AffiliateDiscountService owns the ledger rules: who may be affiliated
// with which discount, and how usage and earnings accrue.
type AffiliateDiscountService struct {
	repo Repository
}

// NewAffiliateDiscountService creates the service with its repository
func NewAffiliateDiscountService(repo Repository) *AffiliateDiscountService {
	return &AffiliateDiscountService{repo: repo}
}

// CreateRecord links a customer to a discount with the given commission
// rate. The commission must be a whole number between 1 and 100, the pair
// must not already have an active record, and the discount must be
// restricted to exactly one region so the earnings currency is unambiguous.
func (s *AffiliateDiscountService) CreateRecord(customerID, discountID string, commission float64) (*Record, error) {
	if commission != math.Trunc(commission) || commission < 1 || commission > 100 {
		return nil, utils.ValidationError("Commission shall be integer between 1 and 100")
	}

	count, err := s.repo.CountActiveByPair(customerID, discountID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.DuplicateError("Cannot create affiliate discount because it already exists")
	}

	discount, err := s.repo.FindDiscountWithRegions(discountID)
	if err != nil {
		return nil, err
	}
	if len(discount.Regions) != 1 {
		return nil, utils.ValidationError("Affiliate discount can be applied only to discount which has one region as it supports only one currency")
	}

	customer, err := s.repo.FindCustomer(customerID)
	if err != nil {
		return nil, err
	}

	record := &models.AffiliateDiscount{
		CustomerID:   customer.ID,
		DiscountID:   discount.ID,
		Commission:   int(commission),
		UsageCount:   0,
		Earnings:     0,
		CurrencyCode: discount.Regions[0].CurrencyCode,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}

	return &Record{
		ID:            record.ID,
		CustomerID:    customer.ID,
		CustomerEmail: customer.Email,
		DiscountID:    discount.ID,
		DiscountCode:  discount.Code,
		Commission:    record.Commission,
		UsageCount:    record.UsageCount,
		Earnings:      record.Earnings,
		CurrencyCode:  record.CurrencyCode,
	}, nil
}

// ListByCustomer returns the enriched records for one customer. An empty
// slice, not an error, when the customer has none.
func (s *AffiliateDiscountService) ListByCustomer(customerID string, limit, offset int) ([]Record, error) {
	return s.repo.ListByCustomer(customerID, limit, offset)
}

// ListByDiscount returns the enriched records for one discount
func (s *AffiliateDiscountService) ListByDiscount(discountID string, limit, offset int) ([]Record, error) {
	return s.repo.ListByDiscount(discountID, limit, offset)
}

// ListAll returns every active record, for the ledger report
func (s *AffiliateDiscountService) ListAll() ([]Record, error) {
	return s.repo.ListAll()
}

// DeleteRecord soft-deletes a record by default, which keeps the row and
// its totals but excludes it from all active-record queries. With hard set
// the row is removed permanently, regardless of a prior soft delete.
func (s *AffiliateDiscountService) DeleteRecord(id string, hard bool) error {
	if hard {
		return s.repo.HardDelete(id)
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return utils.NotFoundError(fmt.Sprintf("Cannot find affiliate discount with id %s", id))
	}
	return s.repo.SoftDelete(id)
}

// Accrue updates the running totals for every active record whose discount
// appears in the adjustment items of a completed order. Each matching
// record gets exactly one usage tick per call; its earnings grow by the
// commission share of the summed pre-discount totals of all items that
// reference its discount, rounded to the nearest minor currency unit.
// Records without a matching discount stay untouched and are excluded from
// the result. Calling this twice for the same order double-counts; the
// event layer fires it at most once per qualifying order.
func (s *AffiliateDiscountService) Accrue(items []AdjustmentItem) ([]models.AffiliateDiscount, error) {
	if len(items) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(items))
	discountIDs := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.DiscountID] {
			seen[item.DiscountID] = true
			discountIDs = append(discountIDs, item.DiscountID)
		}
	}

	records, err := s.repo.ListActiveByDiscountIDs(discountIDs)
	if err != nil {
		return nil, err
	}

	updated := make([]models.AffiliateDiscount, 0, len(records))
	for _, record := range records {
		var total int64
		for _, item := range items {
			if item.DiscountID == record.DiscountID {
				total += item.UnitPriceTotal
			}
		}
		earnings := int64(math.Round(float64(total) * float64(record.Commission) / 100))
		fresh, err := s.repo.IncrementTotals(record.ID, earnings)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *fresh)
	}

	return updated, nil
}
