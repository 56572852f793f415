package main

import (
	"timelink/core/logger"
	"timelink/core/server"
)

// @title TimeLink Scheduling API
// @version 1.0
// @description Group free-time-slot resolution service: computes the time
// @description intervals where all selected group members are simultaneously free.

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
