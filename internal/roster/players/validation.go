package players

import (
	"fmt"
	"strings"
	"time"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

func (s *Service) validate(p Player) error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("%w: player name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: player category is required", httpx.ErrValidation)
	}
	if p.BirthDate != nil && p.BirthDate.After(time.Now()) {
		return fmt.Errorf("%w: birth date cannot be in the future", httpx.ErrValidation)
	}
	return nil
}
