package freeslot

import (
	"timelink/core/cache"
	"timelink/core/config"
	"timelink/core/constants"
	"timelink/core/database"
	"timelink/core/logger"
	"timelink/core/middleware"
	"timelink/core/queue"
	"timelink/modules/freeslot/controller"
	"timelink/modules/freeslot/router"
	"timelink/modules/freeslot/service"

	calendarrepo "timelink/modules/calendar/repository"
	calendarservice "timelink/modules/calendar/service"
	grouprepo "timelink/modules/group/repository"
	groupservice "timelink/modules/group/service"
	schedulerepo "timelink/modules/schedule/repository"
	scheduleservice "timelink/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init wires the free-slot module: the collaborator adapters (schedule
// store, calendar feeds, group membership), the engine service, routes and
// the availability warm-up tasks.
func Init(e *echo.Echo, db database.Database, c cache.Cache, q *queue.Queue, mw *middleware.Middleware, cfg *config.Config) {
	scheduleSvc := scheduleservice.NewScheduleService(schedulerepo.NewScheduleRepository(db))
	feedSvc := calendarservice.NewFeedService(calendarrepo.NewCalendarRepository(db))
	groupSvc := groupservice.NewGroupService(grouprepo.NewGroupRepository(db))

	svc := service.NewFreeSlotService(
		groupSvc,
		[]service.BusySource{scheduleSvc, feedSvc},
		c,
		service.QueryDefaults{
			Timezone:          cfg.Engine.Timezone,
			WorkingHoursStart: cfg.Engine.WorkingHoursStart,
			WorkingHoursEnd:   cfg.Engine.WorkingHoursEnd,
		},
	)

	ctrl := controller.NewFreeSlotController(svc)
	rtr := router.NewFreeSlotRouter(ctrl)
	rtr.Setup(e, mw)

	if q != nil {
		q.HandleFunc(constants.TaskWarmGroup, svc.HandleWarmGroup)
		q.HandleFunc(constants.TaskWarmAll, svc.HandleWarmAll)
		if err := q.Schedule(cfg.Engine.WarmCron, service.NewWarmAllTask()); err != nil {
			logger.Error("FreeSlotModule:Init:ScheduleWarm", err)
		}
	}
}
