package main

import (
	"context"

	"huddle/config"
	"huddle/di"
	"huddle/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := di.InitializeRetentionWorker()
	go worker.Run(ctx)

	http := di.InitializeService()
	http.Serve()
}
