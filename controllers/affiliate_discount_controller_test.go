package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StoreSphere/affiliate-discount/services"
	"github.com/StoreSphere/affiliate-discount/utils"
)

// --- Mock ledger ---

type mockLedger struct {
	record     *services.Record
	records    []services.Record
	err        error
	lastHard   bool
	lastDelete string
}

var _ AffiliateLedger = (*mockLedger)(nil)

func (m *mockLedger) CreateRecord(customerID, discountID string, commission float64) (*services.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}

func (m *mockLedger) ListByCustomer(customerID string, limit, offset int) ([]services.Record, error) {
	return m.records, m.err
}

func (m *mockLedger) ListByDiscount(discountID string, limit, offset int) ([]services.Record, error) {
	return m.records, m.err
}

func (m *mockLedger) ListAll() ([]services.Record, error) {
	return m.records, m.err
}

func (m *mockLedger) DeleteRecord(id string, hard bool) error {
	m.lastDelete = id
	m.lastHard = hard
	return m.err
}

// --- Helpers ---

func setupTestRouter(ledger AffiliateLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	InitAffiliateControllers(ledger)

	router := gin.New()
	router.POST("/affiliate-discount", CreateAffiliateDiscount)
	router.GET("/affiliate-discount/customer/:customerId", GetAffiliateDiscountsByCustomer)
	router.GET("/affiliate-discount/discount/:id", GetAffiliateDiscountsByDiscount)
	router.DELETE("/affiliate-discount/:id", DeleteAffiliateDiscount)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, path, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleRecord() *services.Record {
	return &services.Record{
		ID:            "affdisc_1",
		CustomerID:    "cus_1",
		CustomerEmail: "partner@example.com",
		DiscountID:    "disc_1",
		DiscountCode:  "PARTNER10",
		Commission:    5,
		UsageCount:    0,
		Earnings:      0,
		CurrencyCode:  "eur",
	}
}

// --- Tests ---

func TestCreateAffiliateDiscount_Success(t *testing.T) {
	ledger := &mockLedger{record: sampleRecord()}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodPost, "/affiliate-discount", gin.H{
		"customerId": "cus_1",
		"discountId": "disc_1",
		"commission": 5,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "affdisc_1", body["id"])
	assert.Equal(t, "partner@example.com", body["customerEmail"])
	assert.Equal(t, "PARTNER10", body["discountCode"])
	assert.Equal(t, float64(5), body["commission"])
	assert.Equal(t, float64(0), body["usageCount"])
	assert.Equal(t, float64(0), body["earnings"])
	assert.Equal(t, "eur", body["currencyCode"])
}

func TestCreateAffiliateDiscount_MissingFields(t *testing.T) {
	router := setupTestRouter(&mockLedger{record: sampleRecord()})

	w := doRequest(t, router, http.MethodPost, "/affiliate-discount", gin.H{
		"customerId": "cus_1",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "not passed")
}

func TestCreateAffiliateDiscount_ServiceErrorIs400(t *testing.T) {
	ledger := &mockLedger{err: utils.DuplicateError("Cannot create affiliate discount because it already exists")}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodPost, "/affiliate-discount", gin.H{
		"customerId": "cus_1",
		"discountId": "disc_1",
		"commission": 5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Cannot create affiliate discount because it already exists", body["message"])
}

func TestGetAffiliateDiscountsByCustomer(t *testing.T) {
	ledger := &mockLedger{records: []services.Record{*sampleRecord()}}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodGet, "/affiliate-discount/customer/cus_1", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AffiliateDiscounts []services.Record `json:"affiliateDiscounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.AffiliateDiscounts, 1)
	assert.Equal(t, "affdisc_1", body.AffiliateDiscounts[0].ID)
}

func TestGetAffiliateDiscountsByCustomer_EmptyIsOK(t *testing.T) {
	ledger := &mockLedger{records: []services.Record{}}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodGet, "/affiliate-discount/customer/cus_none", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"affiliateDiscounts": []}`, w.Body.String())
}

func TestGetAffiliateDiscountsByDiscount(t *testing.T) {
	ledger := &mockLedger{records: []services.Record{*sampleRecord()}}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodGet, "/affiliate-discount/discount/disc_1", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AffiliateDiscounts []services.Record `json:"affiliateDiscounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.AffiliateDiscounts, 1)
	assert.Equal(t, "PARTNER10", body.AffiliateDiscounts[0].DiscountCode)
}

func TestDeleteAffiliateDiscount_SoftByDefault(t *testing.T) {
	ledger := &mockLedger{}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodDelete, "/affiliate-discount/affdisc_1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "affdisc_1", ledger.lastDelete)
	assert.False(t, ledger.lastHard)
}

func TestDeleteAffiliateDiscount_HardFlag(t *testing.T) {
	ledger := &mockLedger{}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodDelete, "/affiliate-discount/affdisc_1?hard=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ledger.lastHard)
}

func TestDeleteAffiliateDiscount_NotFoundIs400(t *testing.T) {
	ledger := &mockLedger{err: utils.NotFoundError("Cannot find affiliate discount with id affdisc_missing")}
	router := setupTestRouter(ledger)

	w := doRequest(t, router, http.MethodDelete, "/affiliate-discount/affdisc_missing", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "Cannot find affiliate discount")
}
