package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service turns structured draft requests into prompts and cleans the
// generated result up for the dashboard.
type Service struct {
	generator Generator
	logger    *slog.Logger
	clubName  string
}

// NewService constructs the assistant service.
func NewService(generator Generator, logger *slog.Logger, clubName string) *Service {
	return &Service{generator: generator, logger: logger, clubName: clubName}
}

// ComposeDraft validates the request, builds the prompt and asks the
// generator for a message body.
func (s *Service) ComposeDraft(ctx context.Context, req DraftRequest) (*Draft, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown draft kind %q", httpx.ErrValidation, req.Kind)
	}
	if strings.TrimSpace(req.RecipientName) == "" && req.Kind != DraftAnnouncement {
		return nil, fmt.Errorf("%w: recipient name is required", httpx.ErrValidation)
	}

	prompt := s.buildPrompt(req)
	body, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	subject := req.Subject
	if subject == "" {
		subject = defaultSubject(req, s.clubName)
	}
	return &Draft{Subject: subject, Body: strings.TrimSpace(body)}, nil
}

func (s *Service) buildPrompt(req DraftRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You write short, polite emails in French on behalf of the football club %s.\n", s.clubName)

	switch req.Kind {
	case DraftReminder:
		fmt.Fprintf(&b, "Write a payment reminder to %s. Amount still due: %.2f EUR.\n", req.RecipientName, req.AmountDue)
		b.WriteString("Stay friendly, this is a first reminder addressed to a club family.\n")
	case DraftConvocation:
		fmt.Fprintf(&b, "Write a match convocation for %s", req.RecipientName)
		if req.Category != "" {
			fmt.Fprintf(&b, " (team %s)", req.Category)
		}
		b.WriteString(".\n")
	case DraftAnnouncement:
		b.WriteString("Write a club announcement for all members.\n")
	}

	if req.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Extra context: %s\n", req.Notes)
	}
	return b.String()
}

func defaultSubject(req DraftRequest, clubName string) string {
	switch req.Kind {
	case DraftReminder:
		return clubName + " — Rappel de paiement"
	case DraftConvocation:
		return clubName + " — Convocation"
	default:
		return clubName + " — Information"
	}
}
