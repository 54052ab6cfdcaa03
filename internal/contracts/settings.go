package contracts

import "time"

// ColorScheme UI 색상 선호
type ColorScheme string

const (
	ColorLight  ColorScheme = "light"
	ColorDark   ColorScheme = "dark"
	ColorSystem ColorScheme = "system"
)

// IsValid 허용된 값인지 확인
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorLight, ColorDark, ColorSystem:
		return true
	}
	return false
}

// UserSettings 사용자별 선호 설정
type UserSettings struct {
	Owner       string      `json:"owner"`
	Favorites   []string    `json:"favorites"`
	ColorScheme ColorScheme `json:"color_scheme"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DefaultUserSettings 저장된 값이 없을 때
func DefaultUserSettings(owner string) UserSettings {
	return UserSettings{
		Owner:       owner,
		Favorites:   []string{},
		ColorScheme: ColorSystem,
	}
}
