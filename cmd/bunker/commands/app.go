package commands

import (
	"context"
	"fmt"

	"github.com/wonny/bunkerwatch/backend/internal/boardcache"
	"github.com/wonny/bunkerwatch/backend/internal/catalog"
	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/internal/external/forecastapi"
	"github.com/wonny/bunkerwatch/backend/internal/forecast"
	"github.com/wonny/bunkerwatch/backend/internal/procurement"
	"github.com/wonny/bunkerwatch/backend/internal/settings"
	"github.com/wonny/bunkerwatch/backend/pkg/config"
	"github.com/wonny/bunkerwatch/backend/pkg/database"
	"github.com/wonny/bunkerwatch/backend/pkg/httputil"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
	"github.com/wonny/bunkerwatch/backend/pkg/redis"
)

// 보드 계산에 사용할 예측 소스
const (
	sourceDB  = "db"
	sourceAPI = "api"
)

// cachePrefix redis 키 prefix
const cachePrefix = "bunkerwatch"

// appOptions 커맨드별 의존성 선택
type appOptions struct {
	withDB bool   // DB 연결 + 마이그레이션
	source string // sourceDB | sourceAPI
}

// app 커맨드들이 공유하는 의존성 그래프
// ⭐ SSOT: 의존성 조립은 이 파일에서만
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *database.DB // withDB=false 이면 nil
	redis *redis.Client

	// Redis 비활성 시 프로세스 내 보드 캐시
	memCache *boardcache.MemoryCache

	repo     *forecast.Repository // withDB=false 이면 nil
	upstream *forecastapi.Client
	service  *procurement.Service
	settings settings.Store
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logger.New(cfg),
	}

	var infos []contracts.ProductInfo
	if cfg.Procurement.CatalogFile != "" {
		infos, err = loadCatalog(cfg, a.log)
		if err != nil {
			return nil, err
		}
	}

	if opts.withDB {
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		a.repo = forecast.NewRepository(db.Pool)
		a.log.Info("Connected to database")
	}

	// Redis 는 선택: 연결 실패 시 메모리 캐시로 동작
	rc, err := redis.New(ctx, cfg)
	if err != nil {
		a.log.WithError(err).Warn("Redis unavailable, using memory board cache")
		rc = redis.Disabled()
	}
	a.redis = rc

	var cache procurement.BoardCache = redis.NewCache(rc, cachePrefix)
	if !rc.Enabled() {
		a.memCache = boardcache.NewMemoryCache(a.log)
		cache = a.memCache
	}

	httpClient := httputil.New(cfg, a.log)
	a.upstream = forecastapi.NewClient(httpClient, cfg.ForecastAPI.BaseURL, cfg.ForecastAPI.Token, a.log)

	var source procurement.ForecastSource = a.upstream
	var store procurement.SnapshotStore
	if a.repo != nil {
		store = a.repo
		if opts.source != sourceAPI {
			source = a.repo
		}
	} else if opts.source == sourceDB {
		a.Close()
		return nil, fmt.Errorf("source %q requires a database connection", sourceDB)
	}

	a.service = procurement.NewService(
		procurement.Config{
			Products: cfg.Procurement.Products,
			Catalog:  infos,
			MaxRows:  cfg.Procurement.MaxRows,
			CacheTTL: cfg.Procurement.CacheTTL,
		},
		source,
		a.upstream,
		store,
		cache,
		a.log.Zerolog(),
	)

	if a.db != nil {
		a.settings = settings.NewRepository(a.db.Pool)
	} else {
		a.settings = settings.NewMemoryStore()
	}

	return a, nil
}

// loadCatalog 카탈로그 파일이 PRODUCTS 를 대체
func loadCatalog(cfg *config.Config, log *logger.Logger) ([]contracts.ProductInfo, error) {
	c, err := catalog.Load(cfg.Procurement.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load product catalog: %w", err)
	}

	for _, w := range catalog.CheckWarnings(c) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	hash, err := catalog.Hash(c)
	if err != nil {
		return nil, fmt.Errorf("hash product catalog: %w", err)
	}

	cfg.Procurement.Products = c.Codes()
	log.WithFields(map[string]interface{}{
		"catalog_id": c.Meta.CatalogID,
		"version":    c.Meta.Version,
		"hash":       hash[:12],
		"products":   cfg.Procurement.Products,
	}).Info("Product catalog loaded")

	return c.Infos(), nil
}

// Close releases connections
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
