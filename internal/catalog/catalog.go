package catalog

import "github.com/wonny/bunkerwatch/backend/internal/contracts"

// Catalog 조회/동기화 대상 제품 정의 (YAML)
type Catalog struct {
	Meta     Meta      `yaml:"meta" json:"meta"`
	Products []Product `yaml:"products" json:"products"`
}

// Meta 메타 정보
type Meta struct {
	CatalogID string `yaml:"catalog_id" json:"catalog_id"`
	Version   string `yaml:"version" json:"version"`
}

// Product 제품 한 건
type Product struct {
	Code     string `yaml:"code" json:"code"` // 대문자 (VLSFO, HSFO, MGO ...)
	Name     string `yaml:"name" json:"name"`
	Unit     string `yaml:"unit" json:"unit"` // 예: USD/MT
	Disabled bool   `yaml:"disabled" json:"disabled"`
}

// Codes 활성 제품 코드 (파일 순서 유지)
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		if !p.Disabled {
			codes = append(codes, p.Code)
		}
	}
	return codes
}

// Infos 활성 제품 표시 정보
func (c *Catalog) Infos() []contracts.ProductInfo {
	infos := make([]contracts.ProductInfo, 0, len(c.Products))
	for _, p := range c.Products {
		if p.Disabled {
			continue
		}
		infos = append(infos, contracts.ProductInfo{Code: p.Code, Name: p.Name, Unit: p.Unit})
	}
	return infos
}
