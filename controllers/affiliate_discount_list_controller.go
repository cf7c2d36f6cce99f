package controllers

import (
	"net/http"

	"github.com/StoreSphere/affiliate-discount/utils"
	"github.com/gin-gonic/gin"
)

// GetAffiliateDiscountsByCustomer returns all affiliate discounts granted
// to one customer
func GetAffiliateDiscountsByCustomer(c *gin.Context) {
	utils.LogInfo("GetAffiliateDiscountsByCustomer called")

	customerID := c.Param("customerId")
	if customerID == "" {
		utils.LogError("Missing customer id")
		c.JSON(http.StatusBadRequest, gin.H{"message": "CustomerId is not passed"})
		return
	}

	pagination := utils.NewPagination(c)
	records, err := ledger.ListByCustomer(customerID, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to fetch affiliate discounts for customer %s: %v", customerID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	utils.LogInfo("Retrieved %d affiliate discounts for customer %s", len(records), customerID)
	c.JSON(http.StatusOK, gin.H{"affiliateDiscounts": records})
}

// GetAffiliateDiscountsByDiscount returns all affiliate discounts tied to
// one discount code
func GetAffiliateDiscountsByDiscount(c *gin.Context) {
	utils.LogInfo("GetAffiliateDiscountsByDiscount called")

	discountID := c.Param("id")
	if discountID == "" {
		utils.LogError("Missing discount id")
		c.JSON(http.StatusBadRequest, gin.H{"message": "DiscountId is not passed"})
		return
	}

	pagination := utils.NewPagination(c)
	records, err := ledger.ListByDiscount(discountID, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to fetch affiliate discounts for discount %s: %v", discountID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	utils.LogInfo("Retrieved %d affiliate discounts for discount %s", len(records), discountID)
	c.JSON(http.StatusOK, gin.H{"affiliateDiscounts": records})
}
