package routes

import (
	"github.com/StoreSphere/affiliate-discount/controllers"
	"github.com/gin-gonic/gin"
)

// initHookRoutes sets up the endpoints the host order pipeline posts
// lifecycle events to
func initHookRoutes(api *gin.RouterGroup) {
	hooks := api.Group("/hooks")
	{
		hooks.POST("/order-completed", controllers.OrderCompletedHook)
		hooks.POST("/order-payment-captured", controllers.PaymentCapturedHook)
	}
}
