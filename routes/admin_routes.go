package routes

import (
	"github.com/StoreSphere/affiliate-discount/controllers"
	"github.com/StoreSphere/affiliate-discount/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes sets up the authenticated admin API
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		affiliate := protected.Group("/affiliate-discount")
		{
			affiliate.POST("", controllers.CreateAffiliateDiscount)
			affiliate.GET("/customer/:customerId", controllers.GetAffiliateDiscountsByCustomer)
			affiliate.GET("/discount/:id", controllers.GetAffiliateDiscountsByDiscount)
			affiliate.GET("/export/excel", controllers.DownloadAffiliateLedgerExcel)
			affiliate.GET("/export/pdf", controllers.DownloadAffiliateLedgerPDF)
			affiliate.DELETE("/:id", controllers.DeleteAffiliateDiscount)
		}
	}
}
