package categories

import (
	"fmt"
	"strings"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

func validate(c Category) error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: category code is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	return nil
}
