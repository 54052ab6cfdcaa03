package settings

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// MemoryStore 프로세스 내 설정 저장소 (DB 없이 실행할 때)
type MemoryStore struct {
	mu    sync.RWMutex
	byKey map[string]contracts.UserSettings
	now   func() time.Time
}

// NewMemoryStore 새 메모리 저장소
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byKey: make(map[string]contracts.UserSettings),
		now:   time.Now,
	}
}

// Get 설정 조회 (없으면 기본값)
func (s *MemoryStore) Get(ctx context.Context, owner string) (contracts.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(owner), nil
}

// SetFavorite 즐겨찾기 추가/제거
func (s *MemoryStore) SetFavorite(ctx context.Context, owner, product string, favorite bool) (contracts.UserSettings, error) {
	p, err := normalizeProduct(product)
	if err != nil {
		return contracts.UserSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot(owner)
	current.Favorites = toggle(current.Favorites, p, favorite)
	current.UpdatedAt = s.now().UTC()
	s.byKey[owner] = current
	return s.snapshot(owner), nil
}

// SetColorScheme 색상 선호 변경
func (s *MemoryStore) SetColorScheme(ctx context.Context, owner string, scheme contracts.ColorScheme) (contracts.UserSettings, error) {
	if err := validateScheme(scheme); err != nil {
		return contracts.UserSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot(owner)
	current.ColorScheme = scheme
	current.UpdatedAt = s.now().UTC()
	s.byKey[owner] = current
	return s.snapshot(owner), nil
}

// snapshot 호출자에게 내부 슬라이스를 노출하지 않도록 복사 (lock 보유 상태에서 호출)
func (s *MemoryStore) snapshot(owner string) contracts.UserSettings {
	current, ok := s.byKey[owner]
	if !ok {
		return contracts.DefaultUserSettings(owner)
	}
	favs := make([]string, len(current.Favorites))
	copy(favs, current.Favorites)
	current.Favorites = favs
	return current
}
