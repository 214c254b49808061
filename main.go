package main

import (
	"venue-api/core/logger"
	"venue-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
