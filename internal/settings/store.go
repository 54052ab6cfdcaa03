package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

var (
	// ErrInvalidColorScheme light/dark/system 외 값
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidProduct 빈 제품 코드
	ErrInvalidProduct = errors.New("invalid product")
)

// Store 사용자 선호 설정 저장소
// 핸들러에는 이 인터페이스만 주입 (memory / postgres)
type Store interface {
	Get(ctx context.Context, owner string) (contracts.UserSettings, error)
	SetFavorite(ctx context.Context, owner, product string, favorite bool) (contracts.UserSettings, error)
	SetColorScheme(ctx context.Context, owner string, scheme contracts.ColorScheme) (contracts.UserSettings, error)
}

// normalizeProduct 즐겨찾기 키 정규화
func normalizeProduct(product string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(product))
	if p == "" {
		return "", ErrInvalidProduct
	}
	return p, nil
}

func validateScheme(scheme contracts.ColorScheme) error {
	if !scheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, scheme)
	}
	return nil
}

// toggle 정렬된 즐겨찾기 목록에 product 추가/제거 (새 슬라이스 반환)
func toggle(favorites []string, product string, favorite bool) []string {
	out := make([]string, 0, len(favorites)+1)
	for _, f := range favorites {
		if f != product {
			out = append(out, f)
		}
	}
	if favorite {
		out = append(out, product)
	}
	sort.Strings(out)
	return out
}
