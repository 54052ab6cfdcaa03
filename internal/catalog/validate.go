package catalog

import (
	"fmt"
	"regexp"
)

var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(c *Catalog) error {
	if c.Meta.CatalogID == "" {
		return ValidationError{"meta.catalog_id", "required"}
	}

	if len(c.Products) == 0 {
		return ValidationError{"products", "at least one product required"}
	}

	seen := make(map[string]bool, len(c.Products))
	for i, p := range c.Products {
		field := fmt.Sprintf("products[%d].code", i)
		if !codePattern.MatchString(p.Code) {
			return ValidationError{field, fmt.Sprintf("%q must be upper-case alphanumeric", p.Code)}
		}
		if seen[p.Code] {
			return ValidationError{field, fmt.Sprintf("duplicate code %s", p.Code)}
		}
		seen[p.Code] = true
	}

	if len(c.Codes()) == 0 {
		return ValidationError{"products", "all products are disabled"}
	}

	return nil
}

// CheckWarnings reports recommended-but-optional fields
func CheckWarnings(c *Catalog) []Warning {
	var warnings []Warning
	for _, p := range c.Products {
		if p.Disabled {
			continue
		}
		if p.Name == "" {
			warnings = append(warnings, Warning{"MISSING_NAME", fmt.Sprintf("%s has no display name", p.Code)})
		}
		if p.Unit == "" {
			warnings = append(warnings, Warning{"MISSING_UNIT", fmt.Sprintf("%s has no price unit", p.Code)})
		}
	}
	return warnings
}
