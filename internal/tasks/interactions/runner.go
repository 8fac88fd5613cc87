package interactions

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/outbox/inbox"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
)

// Runner 封装互动事件消费循环（基于 Inbox Runner）。
type Runner struct {
	delegate *inbox.Runner[Event]
}

// RunnerParams 注入 Runner 所需依赖。
type RunnerParams struct {
	Subscriber gcpubsub.Subscriber
	InboxRepo  *repositories.InboxRepository
	Applier    PreferenceApplier
	TxManager  txmanager.Manager
	Logger     log.Logger
	Config     config.InboxConfig
}

// NewRunner 构造互动事件 Runner。
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Subscriber == nil {
		return nil, fmt.Errorf("interactions: subscriber is required")
	}
	if params.InboxRepo == nil {
		return nil, fmt.Errorf("interactions: inbox repository is required")
	}
	if params.Applier == nil {
		return nil, fmt.Errorf("interactions: preference applier is required")
	}
	if params.TxManager == nil {
		return nil, fmt.Errorf("interactions: tx manager is required")
	}

	handler := NewEventHandler(params.Applier, params.Logger, newMetrics())
	delegate, err := inbox.NewRunner[Event](inbox.RunnerParams[Event]{
		Store:      params.InboxRepo.Shared(),
		Subscriber: params.Subscriber,
		TxManager:  params.TxManager,
		Decoder:    newEventDecoder(),
		Handler:    handler,
		Config:     params.Config,
		Logger:     params.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Runner{delegate: delegate}, nil
}

// Run 启动消费循环。
func (r *Runner) Run(ctx context.Context) error {
	if r == nil || r.delegate == nil {
		return nil
	}
	return r.delegate.Run(ctx)
}
