package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-services-ranking/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-ranking/internal/metadata"
	"github.com/bionicotaku/lingo-services-ranking/internal/models/po"
	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// HTTP operation 名称，供中间件与日志识别。
const (
	OperationGetRanked          = "/ranking.v1.RankingService/GetRanked"
	OperationGetTrending        = "/ranking.v1.RankingService/GetTrending"
	OperationRecordInteraction  = "/ranking.v1.RankingService/RecordInteraction"
	OperationGetAffinityProfile = "/ranking.v1.RankingService/GetAffinityProfile"
)

// RankingHandler 暴露排序、热门、互动写入与档案诊断 HTTP 接口。
type RankingHandler struct {
	*BaseHandler
	ranking services.RankingServiceInterface
	updater services.PreferenceUpdaterInterface
	log     *log.Helper
}

// NewRankingHandler 构造 RankingHandler。
func NewRankingHandler(
	ranking services.RankingServiceInterface,
	updater services.PreferenceUpdaterInterface,
	base *BaseHandler,
	logger log.Logger,
) *RankingHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &RankingHandler{
		BaseHandler: base,
		ranking:     ranking,
		updater:     updater,
		log:         log.NewHelper(logger),
	}
}

// RegisterRoutes 将 Handler 挂载到 Kratos HTTP Server。
func RegisterRoutes(srv *khttp.Server, h *RankingHandler) {
	r := srv.Route("/")
	r.GET("/v1/ranking/feed", h.GetRanked)
	r.GET("/v1/ranking/trending", h.GetTrending)
	r.POST("/v1/ranking/interactions", h.RecordInteraction)
	r.GET("/v1/ranking/profiles/{user_id}", h.GetAffinityProfile)
}

type rankQuery struct {
	userID        string
	categoryID    string
	currentItemID string
	page          string
	pageSize      string
}

// GetRanked 返回个性化（或匿名回退）排序结果。
func (h *RankingHandler) GetRanked(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationGetRanked)
	query := ctx.Query()
	in := &rankQuery{
		userID:        query.Get("user_id"),
		categoryID:    query.Get("category_id"),
		currentItemID: firstNonEmpty(query.Get("exclude_item_id"), query.Get("current_item_id")),
		page:          query.Get("page"),
		pageSize:      query.Get("page_size"),
	}
	handler := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return h.getRanked(c, req.(*rankQuery))
	})
	out, err := handler(ctx, in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func (h *RankingHandler) getRanked(ctx context.Context, in *rankQuery) (*dto.RankedPageResponse, error) {
	meta := h.ExtractMetadata(ctx)
	viewer, err := resolveViewer(meta, in.userID)
	if err != nil {
		return nil, err
	}
	page, pageSize, err := parsePaging(in.page, in.pageSize)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseOptionalUUID("category_id", in.categoryID)
	if err != nil {
		return nil, err
	}
	currentItemID, err := parseOptionalUUID("exclude_item_id", in.currentItemID)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()
	timeoutCtx = InjectHandlerMetadata(timeoutCtx, meta)

	result, err := h.ranking.Rank(timeoutCtx, services.RankInput{
		UserID:        viewer,
		CategoryID:    categoryID,
		CurrentItemID: currentItemID,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}
	return dto.ToRankedPageResponse(result), nil
}

type trendingQuery struct {
	page     string
	pageSize string
}

// GetTrending 返回与用户无关的热门榜。
func (h *RankingHandler) GetTrending(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationGetTrending)
	query := ctx.Query()
	in := &trendingQuery{page: query.Get("page"), pageSize: query.Get("page_size")}
	handler := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return h.getTrending(c, req.(*trendingQuery))
	})
	out, err := handler(ctx, in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func (h *RankingHandler) getTrending(ctx context.Context, in *trendingQuery) (*dto.RankedPageResponse, error) {
	page, pageSize, err := parsePaging(in.page, in.pageSize)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	result, err := h.ranking.Trending(timeoutCtx, services.TrendingInput{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, mapServiceError(err)
	}
	return dto.ToRankedPageResponse(result), nil
}

// RecordInteraction 同步应用一次互动，成功返回 202。
func (h *RankingHandler) RecordInteraction(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationRecordInteraction)
	var in dto.RecordInteractionRequest
	if err := ctx.Bind(&in); err != nil {
		return badRequest("decode request body: %v", err)
	}
	handler := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return h.recordInteraction(c, req.(*dto.RecordInteractionRequest))
	})
	out, err := handler(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusAccepted, out)
}

func (h *RankingHandler) recordInteraction(ctx context.Context, in *dto.RecordInteractionRequest) (*dto.RecordInteractionResponse, error) {
	meta := h.ExtractMetadata(ctx)
	viewer, err := resolveViewer(meta, in.UserID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, badRequest("user_id is required")
	}
	itemID, err := parseRequiredUUID("item_id", in.ItemID)
	if err != nil {
		return nil, err
	}
	typ, err := po.ParseInteractionType(in.Type)
	if err != nil {
		return nil, badRequest("%v", err)
	}
	duration := 0.0
	if in.DurationSeconds != nil {
		duration = *in.DurationSeconds
	}
	var occurredAt time.Time
	if strings.TrimSpace(in.OccurredAt) != "" {
		occurredAt, err = time.Parse(time.RFC3339Nano, in.OccurredAt)
		if err != nil {
			return nil, badRequest("occurred_at must be RFC3339: %v", err)
		}
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()
	timeoutCtx = InjectHandlerMetadata(timeoutCtx, meta)

	eventID := in.EventID
	if eventID == "" {
		eventID = meta.RequestID
	}
	result, err := h.updater.Apply(timeoutCtx, services.ApplyInput{
		UserID:          *viewer,
		ItemID:          itemID,
		Type:            typ,
		DurationSeconds: duration,
		OccurredAt:      occurredAt,
		EventID:         eventID,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}
	resp := &dto.RecordInteractionResponse{Accepted: true}
	if result != nil {
		resp.WeightsChanged = result.WeightsChanged
		if result.Profile != nil {
			resp.ProfileVersion = result.Profile.Version
		}
	}
	return resp, nil
}

type profileQuery struct {
	userID string
}

// GetAffinityProfile 返回指定用户的偏好档案（诊断用途）。
func (h *RankingHandler) GetAffinityProfile(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationGetAffinityProfile)
	in := &profileQuery{userID: ctx.Vars().Get("user_id")}
	handler := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return h.getAffinityProfile(c, req.(*profileQuery))
	})
	out, err := handler(ctx, in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func (h *RankingHandler) getAffinityProfile(ctx context.Context, in *profileQuery) (*dto.AffinityProfileResponse, error) {
	userID, err := parseRequiredUUID("user_id", in.userID)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	profile, err := h.ranking.GetProfile(timeoutCtx, userID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return dto.ToAffinityProfileResponse(profile), nil
}

// resolveViewer 优先使用网关注入的用户身份，无请求头时接受显式 user_id；两者皆无视为匿名。
func resolveViewer(meta metadata.HandlerMetadata, explicit string) (*uuid.UUID, error) {
	if meta.RawUserInfo != "" {
		if meta.InvalidUserInfo {
			return nil, badRequest("invalid %s header", headerUserInfo)
		}
		userID, ok := meta.UserUUID()
		if !ok {
			return nil, badRequest("user id in %s is not a uuid", headerUserInfo)
		}
		return &userID, nil
	}
	return parseOptionalUUID("user_id", explicit)
}

// parsePaging 缺省 page=1、page_size=20；显式非法值交由服务层校验。
func parsePaging(rawPage, rawSize string) (int, int, error) {
	page, err := parseIntParam("page", rawPage, services.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	size, err := parseIntParam("page_size", rawSize, services.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func parseIntParam(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("%s must be an integer", name)
	}
	return value, nil
}

func parseOptionalUUID(name, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		return nil, badRequest("%s must be a uuid", name)
	}
	return &value, nil
}

func parseRequiredUUID(name, raw string) (uuid.UUID, error) {
	value, err := parseOptionalUUID(name, raw)
	if err != nil {
		return uuid.Nil, err
	}
	if value == nil || *value == uuid.Nil {
		return uuid.Nil, badRequest("%s is required", name)
	}
	return *value, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
