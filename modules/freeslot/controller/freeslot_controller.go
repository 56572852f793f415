package controller

import (
	"timelink/core/controller"
	"timelink/core/errors"
	"timelink/modules/freeslot/dto"
	"timelink/modules/freeslot/service"

	"github.com/labstack/echo/v4"
)

// FreeSlotController handles free-slot HTTP requests.
type FreeSlotController struct {
	controller.BaseController
	FreeSlotService service.FreeSlotServiceInterface
}

func NewFreeSlotController(svc service.FreeSlotServiceInterface) *FreeSlotController {
	return &FreeSlotController{
		BaseController:  controller.NewBaseController(),
		FreeSlotService: svc,
	}
}

// FindFreeSlots handles POST /free-slots
// @Summary Find common free time slots
// @Description Computes intervals where all supplied participants are simultaneously free
// @Tags FreeSlot
// @Accept json
// @Produce json
// @Param request body dto.FindFreeSlotsRequest true "Participants with busy schedules and search constraints"
// @Success 200 {object} dto.FindFreeSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /free-slots [post]
func (c *FreeSlotController) FindFreeSlots(ctx echo.Context) error {
	var req dto.FindFreeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.FreeSlotService.FindFreeSlots(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Free slots computed")
}

// FindGroupFreeSlots handles POST /schedules/find-free-slots
// @Summary Find common free time slots for a group
// @Description Resolves group membership, gathers member schedules and computes common free time
// @Tags FreeSlot
// @Accept json
// @Produce json
// @Param request body dto.GroupFindFreeSlotsRequest true "Group and search constraints"
// @Success 200 {object} dto.GroupFindFreeSlotsResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /schedules/find-free-slots [post]
func (c *FreeSlotController) FindGroupFreeSlots(ctx echo.Context) error {
	var req dto.GroupFindFreeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.GroupID <= 0 {
		return c.BadRequest(errors.ErrInvalidInput, "groupId is required")
	}

	result, appErr := c.FreeSlotService.FindGroupFreeSlots(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Free slots computed")
}
