package procurement

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/pkg/redis"
)

var (
	// ErrUnknownProduct 설정에 없는 제품 코드
	ErrUnknownProduct = errors.New("unknown product")
	// ErrRefreshUnavailable 업스트림/저장소 없이 생성된 서비스
	ErrRefreshUnavailable = errors.New("refresh is not configured")
)

// ForecastSource 제품별 예측 스냅샷 제공
type ForecastSource interface {
	GetForecasts(ctx context.Context, product string) ([]contracts.ForecastPoint, error)
}

// SnapshotStore 새로 받은 예측 스냅샷 저장
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, product string, points []contracts.ForecastPoint) (int, error)
}

// BoardCache 보드 메모이제이션 (redis.Cache 가 구현)
type BoardCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Config 서비스 설정
type Config struct {
	Products []string // 비어 있으면 모든 제품 허용
	Catalog  []contracts.ProductInfo
	MaxRows  int
	CacheTTL time.Duration
}

// Service 예측 조회 + 보드 계산 + 캐시
type Service struct {
	config   Config
	source   ForecastSource
	upstream ForecastSource
	store    SnapshotStore
	cache    BoardCache
	now      func() time.Time
	log      zerolog.Logger
}

// NewService 새 서비스 생성. upstream/store/cache 는 nil 가능
func NewService(config Config, source ForecastSource, upstream ForecastSource, store SnapshotStore, cache BoardCache, log zerolog.Logger) *Service {
	if config.MaxRows <= 0 {
		config.MaxRows = MaxRows
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = redis.TTLMedium
	}
	return &Service{
		config:   config,
		source:   source,
		upstream: upstream,
		store:    store,
		cache:    cache,
		now:      time.Now,
		log:      log.With().Str("component", "procurement.service").Logger(),
	}
}

// NormalizeProduct 제품 코드 정규화 후 허용 목록 확인
func (s *Service) NormalizeProduct(product string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(product))
	if p == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownProduct)
	}
	if len(s.config.Products) == 0 {
		return p, nil
	}
	for _, allowed := range s.config.Products {
		if allowed == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProduct, p)
}

// Products 설정된 제품 목록
func (s *Service) Products() []string {
	out := make([]string, len(s.config.Products))
	copy(out, s.config.Products)
	return out
}

// Catalog 설정된 제품의 표시 정보 (카탈로그에 없으면 코드만)
func (s *Service) Catalog() []contracts.ProductInfo {
	byCode := make(map[string]contracts.ProductInfo, len(s.config.Catalog))
	for _, info := range s.config.Catalog {
		byCode[info.Code] = info
	}

	infos := make([]contracts.ProductInfo, 0, len(s.config.Products))
	for _, code := range s.config.Products {
		info, ok := byCode[code]
		if !ok {
			info = contracts.ProductInfo{Code: code}
		}
		infos = append(infos, info)
	}
	return infos
}

// Board 제품 보드 조회 (동일 스냅샷이면 캐시 사용)
func (s *Service) Board(ctx context.Context, product string, rows int) (*contracts.ProcurementBoard, error) {
	product, err := s.NormalizeProduct(product)
	if err != nil {
		return nil, err
	}
	if rows <= 0 || rows > s.config.MaxRows {
		rows = s.config.MaxRows
	}

	points, err := s.source.GetForecasts(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("get forecasts for %s: %w", product, err)
	}

	// 빈 스냅샷은 기준일이 오늘이라 캐시하지 않음
	useCache := s.cache != nil && len(points) > 0
	key := redis.BoardKey(product, SnapshotHash(points), rows)
	if useCache {
		var cached contracts.ProcurementBoard
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("board cache read failed")
		} else if found {
			s.log.Debug().Str("product", product).Msg("board cache hit")
			return &cached, nil
		}
	}

	board := BuildBoard(product, points, BoardOptions{
		MaxRows:       rows,
		ReferenceDate: contracts.TruncateDay(s.now()),
		GeneratedAt:   s.now().UTC(),
	})

	s.log.Info().
		Str("product", product).
		Int("forecasts", len(points)).
		Int("rows", len(board.Summary)).
		Int("columns", len(board.Columns)).
		Int("nominated", board.NominatedCount()).
		Msg("procurement board built")

	if useCache {
		if err := s.cache.Set(ctx, key, board, s.config.CacheTTL); err != nil {
			// 캐시 실패는 요청 실패가 아님
			s.log.Warn().Err(err).Str("key", key).Msg("board cache write failed")
		}
	}

	return &board, nil
}

// Refresh 업스트림에서 예측을 받아 스냅샷으로 저장
func (s *Service) Refresh(ctx context.Context, product string) (int, error) {
	product, err := s.NormalizeProduct(product)
	if err != nil {
		return 0, err
	}
	if s.upstream == nil || s.store == nil {
		return 0, ErrRefreshUnavailable
	}

	points, err := s.upstream.GetForecasts(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("fetch forecasts for %s: %w", product, err)
	}

	saved, err := s.store.SaveSnapshot(ctx, product, points)
	if err != nil {
		return 0, fmt.Errorf("save snapshot for %s: %w", product, err)
	}

	s.log.Info().
		Str("product", product).
		Int("fetched", len(points)).
		Int("saved", saved).
		Msg("forecast snapshot refreshed")

	return saved, nil
}

// SnapshotHash 예측 집합 내용의 FNV-1a 해시 (캐시 키용)
func SnapshotHash(points []contracts.ForecastPoint) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:], uint64(p.CurrentDate.Unix()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(p.PredictedDate.Unix()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.PredictedValue))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(p.NDaysAhead))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
