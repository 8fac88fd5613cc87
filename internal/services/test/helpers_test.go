package services_test

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/vo"
	"github.com/bionicotaku/lingo-services-ranking/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeTxManager struct{}

type fakeSession struct{ ctx context.Context }

func (fakeTxManager) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, fakeSession{ctx: ctx})
}

func (fakeTxManager) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, fakeSession{ctx: ctx})
}

func (fakeSession) Tx() pgx.Tx { return nil }

func (s fakeSession) Context() context.Context { return s.ctx }

func ptrUUID(v uuid.UUID) *uuid.UUID { return &v }

// memCatalog 内存目录，按 repositories.CatalogRepository 的语义过滤与分页。
type memCatalog struct {
	mu         sync.Mutex
	items      []*po.CatalogItem
	owners     map[uuid.UUID]po.OwnerSummary
	categories map[uuid.UUID]po.CategorySummary
	countDelta int64
	listCalls  int
}

func newMemCatalog(items ...*po.CatalogItem) *memCatalog {
	c := &memCatalog{
		items:      items,
		owners:     map[uuid.UUID]po.OwnerSummary{},
		categories: map[uuid.UUID]po.CategorySummary{},
	}
	for _, item := range items {
		c.owners[item.OwnerID] = po.OwnerSummary{ID: item.OwnerID, DisplayName: "owner-" + item.OwnerID.String()[:4]}
		c.categories[item.CategoryID] = po.CategorySummary{ID: item.CategoryID, Name: "cat-" + item.CategoryID.String()[:4]}
	}
	return c
}

func (c *memCatalog) matches(item *po.CatalogItem, filter repositories.CatalogFilter) bool {
	if !item.Eligible() {
		return false
	}
	if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
		return false
	}
	for _, id := range filter.ExcludeIDs {
		if id == item.ID {
			return false
		}
	}
	return true
}

func (c *memCatalog) ListEligible(_ context.Context, _ txmanager.Session, filter repositories.CatalogFilter, afterID *uuid.UUID, limit int) ([]*po.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls++
	matched := make([]*po.CatalogItem, 0, len(c.items))
	for _, item := range c.items {
		if !c.matches(item, filter) {
			continue
		}
		if afterID != nil && bytes.Compare(item.ID[:], afterID[:]) <= 0 {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool { return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0 })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (c *memCatalog) CountEligible(_ context.Context, _ txmanager.Session, filter repositories.CatalogFilter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int64
	for _, item := range c.items {
		if c.matches(item, filter) {
			count++
		}
	}
	return count + c.countDelta, nil
}

func (c *memCatalog) GetItem(_ context.Context, _ txmanager.Session, itemID uuid.UUID) (*po.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, repositories.ErrCatalogItemNotFound
}

func (c *memCatalog) ListOwners(_ context.Context, _ txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.OwnerSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[uuid.UUID]po.OwnerSummary, len(ids))
	for _, id := range ids {
		if owner, ok := c.owners[id]; ok {
			out[id] = owner
		}
	}
	return out, nil
}

func (c *memCatalog) ListCategories(_ context.Context, _ txmanager.Session, ids []uuid.UUID) (map[uuid.UUID]po.CategorySummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[uuid.UUID]po.CategorySummary, len(ids))
	for _, id := range ids {
		if category, ok := c.categories[id]; ok {
			out[id] = category
		}
	}
	return out, nil
}

// memAffinity 内存档案仓储，Save 按版本号做乐观锁校验。
type memAffinity struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]*po.AffinityProfile
	conflicts int
	saves     int
}

func newMemAffinity() *memAffinity {
	return &memAffinity{profiles: map[uuid.UUID]*po.AffinityProfile{}}
}

func (m *memAffinity) put(profile *po.AffinityProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile.Clone()
}

func (m *memAffinity) snapshot(userID uuid.UUID) *po.AffinityProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[userID]; ok {
		return p.Clone()
	}
	return nil
}

func (m *memAffinity) Ensure(_ context.Context, _ txmanager.Session, userID uuid.UUID, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		m.profiles[userID] = po.NewAffinityProfile(userID, now)
	}
	return nil
}

func (m *memAffinity) Load(_ context.Context, _ txmanager.Session, userID uuid.UUID) (*po.AffinityProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repositories.ErrAffinityProfileNotFound
	}
	return p.Clone(), nil
}

func (m *memAffinity) Save(_ context.Context, _ txmanager.Session, before, after *po.AffinityProfile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.conflicts > 0 {
		m.conflicts--
		return 0, repositories.ErrAffinityVersionConflict
	}
	current, ok := m.profiles[before.UserID]
	if !ok || current.Version != before.Version {
		return 0, repositories.ErrAffinityVersionConflict
	}
	stored := after.Clone()
	stored.Version = current.Version + 1
	m.profiles[before.UserID] = stored
	return stored.Version, nil
}

type likeKey struct{ user, item uuid.UUID }

type memLikes struct {
	mu    sync.Mutex
	likes map[likeKey]time.Time
}

func newMemLikes() *memLikes { return &memLikes{likes: map[likeKey]time.Time{}} }

func (l *memLikes) Record(_ context.Context, _ txmanager.Session, userID, itemID uuid.UUID, likedAt time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := likeKey{userID, itemID}
	if _, ok := l.likes[key]; ok {
		return false, nil
	}
	l.likes[key] = likedAt
	return true, nil
}

func (l *memLikes) Remove(_ context.Context, _ txmanager.Session, userID, itemID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := likeKey{userID, itemID}
	if _, ok := l.likes[key]; !ok {
		return false, nil
	}
	delete(l.likes, key)
	return true, nil
}

type memOutbox struct {
	mu       sync.Mutex
	messages []repositories.OutboxMessage
}

func (o *memOutbox) Enqueue(_ context.Context, _ txmanager.Session, msg repositories.OutboxMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

type memTrendingCache struct {
	mu    sync.Mutex
	pages map[[2]int]*vo.RankedPage
	sets  int
}

func newMemTrendingCache() *memTrendingCache {
	return &memTrendingCache{pages: map[[2]int]*vo.RankedPage{}}
}

func (c *memTrendingCache) Get(_ context.Context, page, pageSize int) (*vo.RankedPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[[2]int{page, pageSize}]
	return p, ok
}

func (c *memTrendingCache) Set(_ context.Context, page, pageSize int, result *vo.RankedPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.pages[[2]int{page, pageSize}] = result
}

func newItem(categoryID uuid.UUID, views, likes int64, createdAt time.Time, tags ...uuid.UUID) *po.CatalogItem {
	return &po.CatalogItem{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		CategoryID:  categoryID,
		Title:       "item",
		TagIDs:      tags,
		ViewCount:   views,
		LikeCount:   likes,
		IsPublished: true,
		Visibility:  po.VisibilityPublic,
		CreatedAt:   createdAt,
	}
}
