package outbox_test

import (
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-services-ranking/internal/tasks/outbox"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

func TestProvideRunner_SkipsWithoutTopic(t *testing.T) {
	logger := log.NewStdLogger(io.Discard)
	repo := repositories.NewOutboxRepository(nil, logger, defaultOutboxConfig)

	runner := outbox.ProvideRunner(repo, nil, gcpubsub.Config{ProjectID: "test-project"}, defaultOutboxConfig, logger)
	require.Nil(t, runner)
}

func TestProvideRunner_NilRepository(t *testing.T) {
	logger := log.NewStdLogger(io.Discard)
	runner := outbox.ProvideRunner(nil, nil, gcpubsub.Config{TopicID: "ranking-events"}, defaultOutboxConfig, logger)
	require.Nil(t, runner)
}
