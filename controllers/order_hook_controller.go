package controllers

import (
	"github.com/StoreSphere/affiliate-discount/events"
	"github.com/StoreSphere/affiliate-discount/utils"
	"github.com/gin-gonic/gin"
)

var orderBus *events.Bus

// InitOrderHooks wires the event bus into the host-facing hook endpoints
func InitOrderHooks(bus *events.Bus) {
	orderBus = bus
}

// OrderHookRequest is the payload the host order pipeline posts when an
// order changes state
type OrderHookRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// OrderCompletedHook receives the host's order-completed notification.
// Subscriber failures are logged by the bus and never surfaced here, so
// the host pipeline is not blocked by accrual problems.
func OrderCompletedHook(c *gin.Context) {
	utils.LogInfo("OrderCompletedHook called")

	var req OrderHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order hook payload: %v", err)
		utils.BadRequest(c, "order_id is required", err.Error())
		return
	}

	orderBus.Publish(events.OrderCompleted, events.OrderEvent{OrderID: req.OrderID})
	utils.Success(c, "Event accepted", nil)
}

// PaymentCapturedHook receives the host's payment-captured notification
func PaymentCapturedHook(c *gin.Context) {
	utils.LogInfo("PaymentCapturedHook called")

	var req OrderHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order hook payload: %v", err)
		utils.BadRequest(c, "order_id is required", err.Error())
		return
	}

	orderBus.Publish(events.OrderPaymentCaptured, events.OrderEvent{OrderID: req.OrderID})
	utils.Success(c, "Event accepted", nil)
}
