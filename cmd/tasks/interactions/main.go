// Package main 提供互动事件消费者的独立进程入口。
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/configloader"
	"github.com/go-kratos/kratos/v2/log"
)

type interactionsApp struct {
	Runner interactionsRunner
	Logger log.Logger
}

type interactionsRunner interface {
	Run(context.Context) error
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	params := configloader.Params{ConfPath: *confFlag}
	app, cleanup, err := wireInteractionsTask(ctx, params)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger := app.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stdout)
	}
	helper := log.NewHelper(logger)

	if app.Runner == nil {
		helper.Warn("interactions runner disabled (missing messaging.interactions configuration)")
		return
	}

	helper.Info("starting interactions runner")

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		helper.Errorf("interactions runner stopped unexpectedly: %v", err)
		os.Exit(1)
	}

	helper.Info("interactions runner stopped")
}
