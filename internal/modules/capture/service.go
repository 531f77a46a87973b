package capture

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// uploadTimeout bounds every outbound provider call so a hung back-end
// stalls one request, not the process.
const uploadTimeout = 30 * time.Second

// Meta is the visitor metadata snapshot sent alongside the image.
type Meta struct {
	IPAddress        string
	UserAgent        string
	ScreenResolution string
}

// Result is what the ingestion pipeline hands back to the HTTP layer.
type Result struct {
	RedirectURL string
	Capture     *Capture
}

// Service runs the capture ingestion pipeline: resolve token, resolve config,
// upload through the matching adapter, record the outcome, emit the redirect.
type Service struct {
	captures Repository
	links    LinkResolver
	stats    StatsBumper
	configs  ConfigResolver
	adapters AdapterFactory
}

func NewService(captures Repository, links LinkResolver, stats StatsBumper, configs ConfigResolver, adapters AdapterFactory) *Service {
	return &Service{
		captures: captures,
		links:    links,
		stats:    stats,
		configs:  configs,
		adapters: adapters,
	}
}

// Ingest processes one capture attempt. An unknown token is the only failure
// that blocks the redirect; every provider-side failure is absorbed into the
// recorded outcome because the redirect promise takes priority over capture
// reliability.
func (s *Service) Ingest(ctx context.Context, token string, image []byte, meta Meta) (*Result, error) {
	l, err := s.links.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &Capture{
		ID:               uuid.New().String(),
		LinkToken:        l.Token,
		Outcome:          OutcomeSkipped,
		Filename:         buildFilename(now, l.Token),
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
		ScreenResolution: meta.ScreenResolution,
		DestinationURL:   l.DestinationURL,
		CreatedAt:        now,
	}

	if l.ConfigID != nil {
		s.upload(ctx, *l.ConfigID, image, rec)
	} else {
		log.Printf("capture_skipped token=%s reason=no_config", l.Token)
	}

	// The redirect must still happen even if the record cannot be written;
	// log loudly and move on.
	if err := s.captures.Create(ctx, rec); err != nil {
		log.Printf("capture_record_write_failed token=%s error=%q", l.Token, err.Error())
	}
	if err := s.stats.BumpStats(ctx, l.Token, now); err != nil {
		log.Printf("link_stats_bump_failed token=%s error=%q", l.Token, err.Error())
	}

	return &Result{RedirectURL: l.DestinationURL, Capture: rec}, nil
}

// upload resolves the config and invokes the matching adapter exactly once,
// folding the result into the record.
func (s *Service) upload(ctx context.Context, configID uint, image []byte, rec *Capture) {
	cfg, err := s.configs.GetByID(ctx, configID)
	if err != nil {
		// config was removed after the link was created; treat as unconfigured
		log.Printf("capture_skipped token=%s reason=config_missing config_id=%d", rec.LinkToken, configID)
		return
	}

	rec.ProviderKind = string(cfg.Kind)

	adapter, err := s.adapters(cfg.Kind)
	if err != nil {
		rec.Outcome = OutcomeFailed
		log.Printf("capture_upload_failed token=%s error=%q", rec.LinkToken, err.Error())
		return
	}

	uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	res, err := adapter.Upload(uctx, image, rec.Filename, cfg)
	if err != nil {
		rec.Outcome = OutcomeFailed
		log.Printf("capture_upload_failed token=%s kind=%s error=%q", rec.LinkToken, cfg.Kind, err.Error())
		return
	}

	rec.Outcome = OutcomeSucceeded
	rec.RemoteID = &res.RemoteID
	rec.RemoteURL = &res.RemoteURL
	log.Printf("capture_uploaded token=%s kind=%s remote_id=%s", rec.LinkToken, cfg.Kind, res.RemoteID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Capture, error) {
	return s.captures.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Capture, error) {
	return s.captures.List(ctx)
}

// Delete removes a capture record. The remote object is removed best-effort
// through whatever config is currently reachable via the owning link; the
// local row goes away regardless, so an unreachable remote object can never
// block cleanup.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.captures.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.deleteRemote(ctx, rec)
	return s.captures.Delete(ctx, id)
}

// DeleteByLink purges all captures belonging to a link, remote objects first.
func (s *Service) DeleteByLink(ctx context.Context, token string) error {
	recs, err := s.captures.ListByLink(ctx, token)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		s.deleteRemote(ctx, rec)
	}
	return s.captures.DeleteByLink(ctx, token)
}

func (s *Service) deleteRemote(ctx context.Context, rec *Capture) {
	if rec.RemoteID == nil {
		return
	}

	l, err := s.links.GetByToken(ctx, rec.LinkToken)
	if err != nil || l.ConfigID == nil {
		log.Printf("remote_delete_skipped capture=%s reason=link_or_config_gone", rec.ID)
		return
	}
	cfg, err := s.configs.GetByID(ctx, *l.ConfigID)
	if err != nil {
		log.Printf("remote_delete_skipped capture=%s reason=config_gone", rec.ID)
		return
	}
	if string(cfg.Kind) != rec.ProviderKind {
		// the link was rebound to a different provider kind since capture time
		log.Printf("remote_delete_skipped capture=%s reason=kind_mismatch record=%s current=%s",
			rec.ID, rec.ProviderKind, cfg.Kind)
		return
	}

	adapter, err := s.adapters(cfg.Kind)
	if err != nil {
		log.Printf("remote_delete_skipped capture=%s error=%q", rec.ID, err.Error())
		return
	}

	dctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	if err := adapter.Delete(dctx, *rec.RemoteID, cfg); err != nil {
		log.Printf("remote_delete_failed capture=%s kind=%s remote_id=%s error=%q",
			rec.ID, cfg.Kind, *rec.RemoteID, err.Error())
	}
}

func buildFilename(at time.Time, token string) string {
	return fmt.Sprintf("capture_%s_%s_%s.jpg",
		at.Format("20060102_150405"),
		uuid.New().String()[:8],
		tokenFragment(token),
	)
}

func tokenFragment(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
