package controllers

import (
	"net/http"

	"github.com/StoreSphere/affiliate-discount/utils"
	"github.com/gin-gonic/gin"
)

// DeleteAffiliateDiscount removes an affiliate discount. By default the
// record is soft-deleted so its totals stay queryable; pass ?hard=true to
// drop the row for good.
func DeleteAffiliateDiscount(c *gin.Context) {
	utils.LogInfo("DeleteAffiliateDiscount called")

	id := c.Param("id")
	if id == "" {
		utils.LogError("Missing affiliate discount id")
		c.JSON(http.StatusBadRequest, gin.H{"message": "AffiliateDiscountId is not passed"})
		return
	}
	hard := c.Query("hard") == "true"
	utils.LogInfo("Deleting affiliate discount %s (hard=%t)", id, hard)

	if err := ledger.DeleteRecord(id, hard); err != nil {
		utils.LogError("Failed to delete affiliate discount %s: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	utils.LogInfo("Successfully deleted affiliate discount %s", id)
	utils.Success(c, "Affiliate discount deleted successfully", nil)
}
