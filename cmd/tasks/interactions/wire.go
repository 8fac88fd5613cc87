//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"fmt"

	configloader "github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-services-ranking/internal/tasks/interactions"

	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// preferenceSet 只装配偏好更新所需的仓储与服务，消费者进程不依赖 Redis。
var preferenceSet = wire.NewSet(
	repositories.NewCatalogRepository,
	repositories.NewAffinityRepository,
	repositories.NewInteractionLikesRepository,
	repositories.NewOutboxRepository,
	repositories.NewInboxRepository,
	services.NewCatalogView,
	services.NewAffinityStore,
	services.NewPreferenceUpdater,
	wire.Bind(new(services.CatalogRepository), new(*repositories.CatalogRepository)),
	wire.Bind(new(services.AffinityRepository), new(*repositories.AffinityRepository)),
	wire.Bind(new(services.LikeLedger), new(*repositories.InteractionLikesRepository)),
	wire.Bind(new(services.OutboxEnqueuer), new(*repositories.OutboxRepository)),
)

func wireInteractionsTask(context.Context, configloader.Params) (*interactionsApp, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		gclog.ProviderSet,
		pgxpoolx.ProviderSet,
		txmanager.ProviderSet,
		preferenceSet,
		configloader.ProvideInteractionSubscriber,
		interactions.ProvideRunner,
		newInteractionsApp,
	))
}

func newInteractionsApp(logger log.Logger, runner *interactions.Runner) (*interactionsApp, error) {
	if runner == nil {
		return &interactionsApp{Logger: logger}, nil
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return &interactionsApp{
		Runner: runner,
		Logger: logger,
	}, nil
}
