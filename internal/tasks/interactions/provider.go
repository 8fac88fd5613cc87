package interactions

import (
	"github.com/bionicotaku/lingo-services-ranking/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
)

// ProvideRunner 装配互动事件 Runner；订阅未配置时返回 nil。
func ProvideRunner(
	updater *services.PreferenceUpdater,
	inboxRepo *repositories.InboxRepository,
	tx txmanager.Manager,
	sub configloader.InteractionSubscriber,
	outboxCfg outboxcfg.Config,
	logger log.Logger,
) *Runner {
	realSub := gcpubsub.Subscriber(sub)
	if updater == nil || inboxRepo == nil || realSub == nil || logger == nil {
		return nil
	}
	runner, err := NewRunner(RunnerParams{
		Subscriber: realSub,
		InboxRepo:  inboxRepo,
		Applier:    updater,
		TxManager:  tx,
		Logger:     logger,
		Config:     outboxCfg.Inbox,
	})
	if err != nil {
		log.NewHelper(logger).Errorw("msg", "init interactions runner failed", "error", err)
		return nil
	}
	return runner
}
