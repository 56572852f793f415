package router

import (
	"timelink/core/middleware"
	"timelink/modules/freeslot/controller"

	"github.com/labstack/echo/v4"
)

// FreeSlotRouter registers free-slot routes.
type FreeSlotRouter struct {
	FreeSlotController *controller.FreeSlotController
}

func NewFreeSlotRouter(freeSlotController *controller.FreeSlotController) *FreeSlotRouter {
	return &FreeSlotRouter{
		FreeSlotController: freeSlotController,
	}
}

// Setup registers the free-slot endpoints.
func (r *FreeSlotRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Self-contained query: caller supplies busy schedules inline.
	v1.POST("/free-slots", r.FreeSlotController.FindFreeSlots)

	// Group-based query: membership and schedules resolved server-side.
	// Path kept compatible with the scheduling client.
	v1.POST("/schedules/find-free-slots", r.FreeSlotController.FindGroupFreeSlots)
}
