package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// ProfileMutator 在档案副本上执行变更；返回错误时整个事务回滚。
type ProfileMutator func(profile *po.AffinityProfile) error

// AffinityStore 提供偏好档案的读取与原子读改写。
type AffinityStore struct {
	repo       AffinityRepository
	txManager  txmanager.Manager
	timeout    time.Duration
	maxRetries int
	now        func() time.Time
	log        *log.Helper
}

// NewAffinityStore 构造 AffinityStore。
func NewAffinityStore(repo AffinityRepository, tx txmanager.Manager, opts Options, logger log.Logger) *AffinityStore {
	opts = opts.withDefaults()
	return &AffinityStore{
		repo:       repo,
		txManager:  tx,
		timeout:    opts.AffinityTimeout,
		maxRetries: opts.MaxRetries,
		now:        time.Now,
		log:        log.NewHelper(logger),
	}
}

// Get 返回用户档案；不存在时返回 nil, nil。
func (s *AffinityStore) Get(ctx context.Context, userID uuid.UUID) (*po.AffinityProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile, err := s.repo.Load(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAffinityProfileNotFound) {
			return nil, nil
		}
		return nil, dependencyError("load affinity profile", err)
	}
	return profile, nil
}

// Upsert 在独立事务中完成 get-or-create、变更与版本校验写回，冲突时有限次退避重试。
func (s *AffinityStore) Upsert(ctx context.Context, userID uuid.UUID, mutate ProfileMutator) (*po.AffinityProfile, error) {
	var result *po.AffinityProfile
	err := s.WithinRetryingTx(ctx, func(txCtx context.Context, sess txmanager.Session) error {
		updated, err := s.UpsertInSession(txCtx, sess, userID, mutate)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// WithinRetryingTx 在事务中执行 fn，遇到 ErrUpdateConflict 时回滚并整体重试。
func (s *AffinityStore) WithinRetryingTx(ctx context.Context, fn func(context.Context, txmanager.Session) error) error {
	return s.retry(ctx, func(attemptCtx context.Context) error {
		return s.txManager.WithinTx(attemptCtx, txmanager.TxOptions{}, fn)
	})
}

// UpsertInSession 在调用方持有的事务内执行一次读改写，不做重试。
func (s *AffinityStore) UpsertInSession(ctx context.Context, sess txmanager.Session, userID uuid.UUID, mutate ProfileMutator) (*po.AffinityProfile, error) {
	now := s.now().UTC()
	if err := s.repo.Ensure(ctx, sess, userID, now); err != nil {
		return nil, dependencyError("ensure affinity profile", err)
	}
	before, err := s.repo.Load(ctx, sess, userID)
	if err != nil {
		return nil, dependencyError("load affinity profile", err)
	}

	after := before.Clone()
	if err := mutate(after); err != nil {
		return nil, err
	}
	after.LastUpdatedAt = now

	version, err := s.repo.Save(ctx, sess, before, after)
	if err != nil {
		if errors.Is(err, repositories.ErrAffinityVersionConflict) {
			return nil, fmt.Errorf("save affinity profile %s: %w", userID, ErrUpdateConflict)
		}
		return nil, dependencyError("save affinity profile", err)
	}
	after.Version = version
	return after, nil
}

// retry 仅对 ErrUpdateConflict 做指数退避重试，其余错误立即返回。
func (s *AffinityStore) retry(ctx context.Context, op func(context.Context) error) error {
	attempt := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newConflictBackOff(), uint64(s.maxRetries)),
		ctx,
	)
	err := backoff.Retry(func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		err := op(attemptCtx)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUpdateConflict) {
			s.log.WithContext(ctx).Debugf("affinity upsert conflict, attempt=%d", attempt)
			return err
		}
		return backoff.Permanent(err)
	}, policy)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrDependencyUnavailable) {
		return dependencyError("affinity upsert", err)
	}
	return err
}

func newConflictBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0
	return b
}
