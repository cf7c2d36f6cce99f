package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/StoreSphere/affiliate-discount/models"
	"github.com/StoreSphere/affiliate-discount/services"
	"github.com/StoreSphere/affiliate-discount/utils"
)

// AffiliateDiscountRepository is the gorm-backed implementation of
// services.Repository. Gorm's default scope hides soft-deleted rows, which
// is exactly the active-record predicate the ledger needs.
type AffiliateDiscountRepository struct {
	db *gorm.DB
}

var _ services.Repository = (*AffiliateDiscountRepository)(nil)

// NewAffiliateDiscountRepository creates a repository on the given DB handle
func NewAffiliateDiscountRepository(db *gorm.DB) *AffiliateDiscountRepository {
	return &AffiliateDiscountRepository{db: db}
}

const recordColumns = `affiliate_discounts.id,
	affiliate_discounts.customer_id,
	customers.email AS customer_email,
	affiliate_discounts.discount_id,
	discounts.code AS discount_code,
	affiliate_discounts.commission,
	affiliate_discounts.usage_count,
	affiliate_discounts.earnings,
	affiliate_discounts.currency_code`

func (r *AffiliateDiscountRepository) enrichedQuery() *gorm.DB {
	return r.db.Model(&models.AffiliateDiscount{}).
		Select(recordColumns).
		Joins("LEFT JOIN customers ON customers.id = affiliate_discounts.customer_id").
		Joins("LEFT JOIN discounts ON discounts.id = affiliate_discounts.discount_id")
}

// CountActiveByPair counts active records for a (customer, discount) pair
func (r *AffiliateDiscountRepository) CountActiveByPair(customerID, discountID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AffiliateDiscount{}).
		Where("customer_id = ? AND discount_id = ?", customerID, discountID).
		Count(&count).Error
	return count, err
}

// Create persists a new record, generating its identifier
func (r *AffiliateDiscountRepository) Create(record *models.AffiliateDiscount) error {
	if record.ID == "" {
		record.ID = "affdisc_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	return r.db.Create(record).Error
}

// FindByID returns an active record by id
func (r *AffiliateDiscountRepository) FindByID(id string) (*models.AffiliateDiscount, error) {
	var record models.AffiliateDiscount
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError(fmt.Sprintf("Cannot find affiliate discount with id %s", id))
		}
		return nil, err
	}
	return &record, nil
}

// ListByCustomer returns the enriched records of one customer
func (r *AffiliateDiscountRepository) ListByCustomer(customerID string, limit, offset int) ([]services.Record, error) {
	rows := make([]services.Record, 0)
	query := r.enrichedQuery().
		Where("affiliate_discounts.customer_id = ?", customerID).
		Order("affiliate_discounts.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByDiscount returns the enriched records of one discount
func (r *AffiliateDiscountRepository) ListByDiscount(discountID string, limit, offset int) ([]services.Record, error) {
	rows := make([]services.Record, 0)
	query := r.enrichedQuery().
		Where("affiliate_discounts.discount_id = ?", discountID).
		Order("affiliate_discounts.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every active enriched record
func (r *AffiliateDiscountRepository) ListAll() ([]services.Record, error) {
	rows := make([]services.Record, 0)
	err := r.enrichedQuery().
		Order("affiliate_discounts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SoftDelete marks a record deleted, keeping the row
func (r *AffiliateDiscountRepository) SoftDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.AffiliateDiscount{}).Error
}

// HardDelete removes the row permanently, even when already soft-deleted.
// Deleting a missing id is a no-op, matching single-row SQL DELETE.
func (r *AffiliateDiscountRepository) HardDelete(id string) error {
	return r.db.Unscoped().Where("id = ?", id).Delete(&models.AffiliateDiscount{}).Error
}

// ListActiveByDiscountIDs returns the active records whose discount is in
// the given set
func (r *AffiliateDiscountRepository) ListActiveByDiscountIDs(discountIDs []string) ([]models.AffiliateDiscount, error) {
	records := make([]models.AffiliateDiscount, 0)
	err := r.db.
		Where("discount_id IN ?", discountIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// IncrementTotals bumps usage_count by one and earnings by the given delta
// as a single SQL update inside a transaction, so two racing order events
// for the same discount cannot lose an update.
func (r *AffiliateDiscountRepository) IncrementTotals(id string, earnings int64) (*models.AffiliateDiscount, error) {
	var record models.AffiliateDiscount
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AffiliateDiscount{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"usage_count": gorm.Expr("usage_count + 1"),
				"earnings":    gorm.Expr("earnings + ?", earnings),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NotFoundError(fmt.Sprintf("Cannot find affiliate discount with id %s", id))
		}
		return tx.First(&record, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindCustomer looks up a host platform customer
func (r *AffiliateDiscountRepository) FindCustomer(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError(fmt.Sprintf("Cannot find customer with id %s", id))
		}
		return nil, err
	}
	return &customer, nil
}

// FindDiscountWithRegions looks up a host platform discount with its regions
func (r *AffiliateDiscountRepository) FindDiscountWithRegions(id string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.Preload("Regions").First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError(fmt.Sprintf("Cannot find discount with id %s", id))
		}
		return nil, err
	}
	return &discount, nil
}
