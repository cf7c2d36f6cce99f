package routes

import (
	"github.com/StoreSphere/affiliate-discount/controllers"
	"github.com/StoreSphere/affiliate-discount/events"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes. The
// ledger service and event bus are created in main and passed in
// explicitly.
func SetupRouter(ledger controllers.AffiliateLedger, bus *events.Bus) *gin.Engine {
	router := gin.Default()

	controllers.InitAffiliateControllers(ledger)
	controllers.InitOrderHooks(bus)

	// API version group
	api := router.Group("/v1")
	{
		initAdminRoutes(api)
		initHookRoutes(api)
	}

	return router
}
