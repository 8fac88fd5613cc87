package mocks

//go:generate go run github.com/golang/mock/mockgen -destination=mock_catalog_repository.go -package=mocks github.com/bionicotaku/lingo-services-ranking/internal/services CatalogRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_affinity_repository.go -package=mocks github.com/bionicotaku/lingo-services-ranking/internal/services AffinityRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_like_ledger.go -package=mocks github.com/bionicotaku/lingo-services-ranking/internal/services LikeLedger
//go:generate go run github.com/golang/mock/mockgen -destination=mock_outbox_enqueuer.go -package=mocks github.com/bionicotaku/lingo-services-ranking/internal/services OutboxEnqueuer
//go:generate go run github.com/golang/mock/mockgen -destination=mock_ranking_service.go -package=mocks github.com/bionicotaku/lingo-services-ranking/internal/services RankingServiceInterface,PreferenceUpdaterInterface
