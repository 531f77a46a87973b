package link

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"snaplink/internal/modules/provider"
)

// tokenBytes gives 128 bits of entropy per token, enough to make
// enumeration impractical.
const tokenBytes = 16

type Service struct {
	links    Repository
	configs  ConfigResolver
	captures CaptureCleaner
}

func NewService(links Repository, configs ConfigResolver, captures CaptureCleaner) *Service {
	return &Service{links: links, configs: configs, captures: captures}
}

// Create validates the destination and the optional config reference, then
// stores a new link under a freshly generated token.
func (s *Service) Create(ctx context.Context, req CreateLinkRequest) (*Link, error) {
	if err := validateDestination(req.DestinationURL); err != nil {
		return nil, err
	}

	if req.ConfigID != nil {
		if _, err := s.configs.GetByID(ctx, *req.ConfigID); err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return nil, fmt.Errorf("%w: config %d", ErrInvalidConfigRef, *req.ConfigID)
			}
			return nil, err
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Unnamed link"
	}

	// A collision on the unique token column is astronomically unlikely but
	// cheap to recover from: regenerate and insert again.
	for attempt := 0; attempt < 3; attempt++ {
		token, err := NewToken()
		if err != nil {
			return nil, err
		}
		l := &Link{
			Token:          token,
			Name:           name,
			DestinationURL: req.DestinationURL,
			ConfigID:       req.ConfigID,
		}
		err = s.links.Create(ctx, l)
		if err == nil {
			return l, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, errors.New("could not generate a unique token")
}

// Resolve returns the link for a token, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, token string) (*Link, error) {
	return s.links.GetByToken(ctx, token)
}

func (s *Service) List(ctx context.Context) ([]*Link, error) {
	return s.links.List(ctx)
}

// Delete removes a link and its capture records. Remote objects are cleaned
// up best-effort before the rows go away.
func (s *Service) Delete(ctx context.Context, token string) error {
	if _, err := s.links.GetByToken(ctx, token); err != nil {
		return err
	}
	if s.captures != nil {
		if err := s.captures.DeleteByLink(ctx, token); err != nil {
			return err
		}
	}
	return s.links.Delete(ctx, token)
}

// NewToken returns an unguessable url-safe token from crypto/rand.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token generation: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func validateDestination(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: must be an absolute http(s) URL", ErrValidation)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite reports constraint failures by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
