package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StoreSphere/affiliate-discount/models"
	"github.com/StoreSphere/affiliate-discount/utils"
)

// --- Mock repository ---

type mockRepo struct {
	records   map[string]*models.AffiliateDiscount
	deleted   map[string]bool
	customers map[string]*models.Customer
	discounts map[string]*models.Discount
	nextID    int
}

var _ Repository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{
		records:   make(map[string]*models.AffiliateDiscount),
		deleted:   make(map[string]bool),
		customers: make(map[string]*models.Customer),
		discounts: make(map[string]*models.Discount),
	}
}

func (m *mockRepo) CountActiveByPair(customerID, discountID string) (int64, error) {
	var count int64
	for id, record := range m.records {
		if !m.deleted[id] && record.CustomerID == customerID && record.DiscountID == discountID {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) Create(record *models.AffiliateDiscount) error {
	m.nextID++
	record.ID = fmt.Sprintf("affdisc_%d", m.nextID)
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *mockRepo) FindByID(id string) (*models.AffiliateDiscount, error) {
	record, ok := m.records[id]
	if !ok || m.deleted[id] {
		return nil, utils.NotFoundError("Cannot find affiliate discount with id " + id)
	}
	clone := *record
	return &clone, nil
}

func (m *mockRepo) enrich(record *models.AffiliateDiscount) Record {
	view := Record{
		ID:           record.ID,
		CustomerID:   record.CustomerID,
		DiscountID:   record.DiscountID,
		Commission:   record.Commission,
		UsageCount:   record.UsageCount,
		Earnings:     record.Earnings,
		CurrencyCode: record.CurrencyCode,
	}
	if customer, ok := m.customers[record.CustomerID]; ok {
		view.CustomerEmail = customer.Email
	}
	if discount, ok := m.discounts[record.DiscountID]; ok {
		view.DiscountCode = discount.Code
	}
	return view
}

func (m *mockRepo) ListByCustomer(customerID string, limit, offset int) ([]Record, error) {
	rows := make([]Record, 0)
	for id, record := range m.records {
		if !m.deleted[id] && record.CustomerID == customerID {
			rows = append(rows, m.enrich(record))
		}
	}
	return rows, nil
}

func (m *mockRepo) ListByDiscount(discountID string, limit, offset int) ([]Record, error) {
	rows := make([]Record, 0)
	for id, record := range m.records {
		if !m.deleted[id] && record.DiscountID == discountID {
			rows = append(rows, m.enrich(record))
		}
	}
	return rows, nil
}

func (m *mockRepo) ListAll() ([]Record, error) {
	rows := make([]Record, 0)
	for id, record := range m.records {
		if !m.deleted[id] {
			rows = append(rows, m.enrich(record))
		}
	}
	return rows, nil
}

func (m *mockRepo) SoftDelete(id string) error {
	m.deleted[id] = true
	return nil
}

func (m *mockRepo) HardDelete(id string) error {
	delete(m.records, id)
	delete(m.deleted, id)
	return nil
}

func (m *mockRepo) ListActiveByDiscountIDs(discountIDs []string) ([]models.AffiliateDiscount, error) {
	records := make([]models.AffiliateDiscount, 0)
	for id, record := range m.records {
		if m.deleted[id] {
			continue
		}
		for _, discountID := range discountIDs {
			if record.DiscountID == discountID {
				records = append(records, *record)
				break
			}
		}
	}
	return records, nil
}

func (m *mockRepo) IncrementTotals(id string, earnings int64) (*models.AffiliateDiscount, error) {
	record, ok := m.records[id]
	if !ok || m.deleted[id] {
		return nil, utils.NotFoundError("Cannot find affiliate discount with id " + id)
	}
	record.UsageCount++
	record.Earnings += earnings
	clone := *record
	return &clone, nil
}

func (m *mockRepo) FindCustomer(id string) (*models.Customer, error) {
	customer, ok := m.customers[id]
	if !ok {
		return nil, utils.NotFoundError("Cannot find customer with id " + id)
	}
	return customer, nil
}

func (m *mockRepo) FindDiscountWithRegions(id string) (*models.Discount, error) {
	discount, ok := m.discounts[id]
	if !ok {
		return nil, utils.NotFoundError("Cannot find discount with id " + id)
	}
	return discount, nil
}

// --- Helpers ---

func newTestRepo() *mockRepo {
	repo := newMockRepo()
	repo.customers["cus_1"] = &models.Customer{ID: "cus_1", Email: "partner@example.com"}
	repo.discounts["disc_1"] = &models.Discount{
		ID:   "disc_1",
		Code: "PARTNER10",
		Regions: []models.Region{
			{ID: "reg_1", Name: "EU", CurrencyCode: "eur"},
		},
	}
	repo.discounts["disc_multi"] = &models.Discount{
		ID:   "disc_multi",
		Code: "GLOBAL",
		Regions: []models.Region{
			{ID: "reg_1", Name: "EU", CurrencyCode: "eur"},
			{ID: "reg_2", Name: "US", CurrencyCode: "usd"},
		},
	}
	repo.discounts["disc_none"] = &models.Discount{ID: "disc_none", Code: "ORPHAN"}
	return repo
}

func mustCreate(t *testing.T, svc *AffiliateDiscountService, customerID, discountID string, commission float64) *Record {
	t.Helper()
	record, err := svc.CreateRecord(customerID, discountID, commission)
	require.NoError(t, err)
	return record
}

// --- Tests ---

func TestCreateRecord_Success(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	record, err := svc.CreateRecord("cus_1", "disc_1", 5)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "cus_1", record.CustomerID)
	assert.Equal(t, "partner@example.com", record.CustomerEmail)
	assert.Equal(t, "disc_1", record.DiscountID)
	assert.Equal(t, "PARTNER10", record.DiscountCode)
	assert.Equal(t, 5, record.Commission)
	assert.Equal(t, int64(0), record.UsageCount)
	assert.Equal(t, int64(0), record.Earnings)
	assert.Equal(t, "eur", record.CurrencyCode)
}

func TestCreateRecord_CommissionBounds(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	for _, commission := range []float64{0, 101, -3, 2.5} {
		_, err := svc.CreateRecord("cus_1", "disc_1", commission)
		require.Error(t, err, "commission %v should be rejected", commission)
		assert.True(t, utils.IsValidationError(err), "commission %v should be a validation error", commission)
	}

	for _, commission := range []float64{1, 100} {
		_, err := svc.CreateRecord("cus_1", "disc_1", commission)
		require.NoError(t, err, "commission %v should be accepted", commission)
		require.NoError(t, svc.DeleteRecord(mustExistingID(t, repo), true))
	}
}

func mustExistingID(t *testing.T, repo *mockRepo) string {
	t.Helper()
	for id := range repo.records {
		if !repo.deleted[id] {
			return id
		}
	}
	t.Fatal("no active record in repo")
	return ""
}

func TestCreateRecord_Duplicate(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	mustCreate(t, svc, "cus_1", "disc_1", 10)

	_, err := svc.CreateRecord("cus_1", "disc_1", 10)
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
}

func TestCreateRecord_AfterSoftDeleteSucceeds(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	first := mustCreate(t, svc, "cus_1", "disc_1", 10)
	require.NoError(t, svc.DeleteRecord(first.ID, false))

	second, err := svc.CreateRecord("cus_1", "disc_1", 15)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 15, second.Commission)
}

func TestCreateRecord_RegionCount(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	_, err := svc.CreateRecord("cus_1", "disc_multi", 10)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))

	_, err = svc.CreateRecord("cus_1", "disc_none", 10)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestCreateRecord_MissingReferences(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	_, err := svc.CreateRecord("cus_1", "disc_missing", 10)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))

	_, err = svc.CreateRecord("cus_missing", "disc_1", 10)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestAccrue_SingleAdjustment(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	record := mustCreate(t, svc, "cus_1", "disc_1", 5)

	updated, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_1", UnitPriceTotal: 10000}})
	require.NoError(t, err)
	require.Len(t, updated, 1)

	assert.Equal(t, record.ID, updated[0].ID)
	assert.Equal(t, int64(1), updated[0].UsageCount)
	assert.Equal(t, int64(500), updated[0].Earnings)
}

func TestAccrue_SameDiscountTwiceCountsOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	mustCreate(t, svc, "cus_1", "disc_1", 10)

	updated, err := svc.Accrue([]AdjustmentItem{
		{DiscountID: "disc_1", UnitPriceTotal: 10000},
		{DiscountID: "disc_1", UnitPriceTotal: 2500},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)

	// One usage tick, totals summed before applying the rate.
	assert.Equal(t, int64(1), updated[0].UsageCount)
	assert.Equal(t, int64(1250), updated[0].Earnings)
}

func TestAccrue_Rounding(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	mustCreate(t, svc, "cus_1", "disc_1", 5)

	// 50 * 5% = 2.5, rounds half away from zero to 3.
	updated, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_1", UnitPriceTotal: 50}})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, int64(3), updated[0].Earnings)
}

func TestAccrue_UnknownDiscountLeavesLedgerUntouched(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	record := mustCreate(t, svc, "cus_1", "disc_1", 5)

	updated, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_other", UnitPriceTotal: 10000}})
	require.NoError(t, err)
	assert.Empty(t, updated)

	fresh, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.UsageCount)
	assert.Equal(t, int64(0), fresh.Earnings)
}

func TestAccrue_SkipsSoftDeletedRecords(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	record := mustCreate(t, svc, "cus_1", "disc_1", 5)
	require.NoError(t, svc.DeleteRecord(record.ID, false))

	updated, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_1", UnitPriceTotal: 10000}})
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestAccrue_AccumulatesAcrossCalls(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	mustCreate(t, svc, "cus_1", "disc_1", 10)

	_, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_1", UnitPriceTotal: 1000}})
	require.NoError(t, err)
	updated, err := svc.Accrue([]AdjustmentItem{{DiscountID: "disc_1", UnitPriceTotal: 3000}})
	require.NoError(t, err)

	require.Len(t, updated, 1)
	assert.Equal(t, int64(2), updated[0].UsageCount)
	assert.Equal(t, int64(400), updated[0].Earnings)
}

func TestAccrue_NoItems(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	mustCreate(t, svc, "cus_1", "disc_1", 10)

	updated, err := svc.Accrue(nil)
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestDeleteRecord_SoftMissing(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	err := svc.DeleteRecord("affdisc_missing", false)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestDeleteRecord_HardAfterSoft(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	record := mustCreate(t, svc, "cus_1", "disc_1", 10)

	require.NoError(t, svc.DeleteRecord(record.ID, false))
	require.NoError(t, svc.DeleteRecord(record.ID, true))

	_, ok := repo.records[record.ID]
	assert.False(t, ok)
}

func TestListByCustomer_EmptyIsNotAnError(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)

	records, err := svc.ListByCustomer("cus_without_records", 50, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListByDiscount_ExcludesSoftDeleted(t *testing.T) {
	repo := newTestRepo()
	svc := NewAffiliateDiscountService(repo)
	record := mustCreate(t, svc, "cus_1", "disc_1", 10)

	records, err := svc.ListByDiscount("disc_1", 50, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PARTNER10", records[0].DiscountCode)

	require.NoError(t, svc.DeleteRecord(record.ID, false))

	records, err = svc.ListByDiscount("disc_1", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
