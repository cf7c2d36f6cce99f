package controllers

import (
	"net/http"

	"github.com/StoreSphere/affiliate-discount/utils"
	"github.com/gin-gonic/gin"
)

// CreateAffiliateDiscountRequest represents the request body for linking a
// customer to a discount. Commission is bound as a float so non-integer
// values reach the service and fail its whole-number check instead of
// being silently truncated.
type CreateAffiliateDiscountRequest struct {
	CustomerID string   `json:"customerId" binding:"required"`
	DiscountID string   `json:"discountId" binding:"required"`
	Commission *float64 `json:"commission" binding:"required"`
}

// CreateAffiliateDiscount creates a new affiliate discount record
func CreateAffiliateDiscount(c *gin.Context) {
	utils.LogInfo("CreateAffiliateDiscount called")

	var req CreateAffiliateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "CustomerId or DiscountId or Commission is not passed"})
		return
	}
	utils.LogInfo("Linking customer %s to discount %s", req.CustomerID, req.DiscountID)

	record, err := ledger.CreateRecord(req.CustomerID, req.DiscountID, *req.Commission)
	if err != nil {
		utils.LogError("Failed to create affiliate discount for customer %s: %v", req.CustomerID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := utils.SendAffiliateGrantEmail(record.CustomerEmail, record.DiscountCode, record.Commission); err != nil {
		// Notification only; the record is already persisted.
		utils.LogError("Failed to send affiliate grant email to %s: %v", record.CustomerEmail, err)
	}

	utils.LogInfo("Successfully created affiliate discount %s for customer %s", record.ID, record.CustomerID)
	c.JSON(http.StatusCreated, record)
}
