package widget

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"organizer-portal/internal/format"
	"organizer-portal/internal/models"

	"go.uber.org/zap"
)

//go:embed templates/widget.html
var templateFS embed.FS

// ErrUnavailable is returned for events that do not exist or are not
// published yet. Both look the same to an embedding site.
var ErrUnavailable = errors.New("widget event unavailable")

// Source is the read side the widget needs; storage.Store satisfies it.
type Source interface {
	GetOrganizer(ctx context.Context) (models.Organizer, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
}

// Cache stores rendered widget documents. A miss is ("", false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, html string, ttl time.Duration) error
}

type Service struct {
	source   Source
	cache    Cache
	ttl      time.Duration
	tmpl     *template.Template
	logger   *zap.Logger
	notFound func(error) bool
}

// NewService builds the renderer. cache may be nil. notFound tells the
// service which source errors mean "no such event".
func NewService(source Source, cache Cache, ttl time.Duration, notFound func(error) bool, logger *zap.Logger) (*Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/widget.html")
	if err != nil {
		return nil, fmt.Errorf("parse widget template: %w", err)
	}
	return &Service{
		source:   source,
		cache:    cache,
		ttl:      ttl,
		tmpl:     tmpl,
		logger:   logger,
		notFound: notFound,
	}, nil
}

type ticketLine struct {
	Name  string
	Price string
}

type view struct {
	Config      models.WidgetConfig
	Event       models.Event
	Date        string
	PriceFrom   string
	SoldOut     bool
	Extended    bool
	Brand       string
	TicketLines []ticketLine
	Height      int
}

// CacheKey is the key a normalized config is stored under.
func CacheKey(cfg models.WidgetConfig) string {
	return fmt.Sprintf("widget:v1:%s:%s:%s:%s:%t", cfg.EventID, cfg.Theme, cfg.Color, cfg.Layout, cfg.Branding)
}

// Render returns the standalone widget document for cfg. Cache errors are
// logged and the widget is rendered directly.
func (s *Service) Render(ctx context.Context, cfg models.WidgetConfig) ([]byte, error) {
	cfg = Normalize(cfg)
	if cfg.EventID == "" {
		return nil, ErrUnavailable
	}
	key := CacheKey(cfg)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("widget cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return []byte(cached), nil
		}
	}

	event, err := s.source.GetEvent(ctx, cfg.EventID)
	if err != nil {
		if s.notFound != nil && s.notFound(err) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	if !event.Publishable() {
		return nil, ErrUnavailable
	}
	org, err := s.source.GetOrganizer(ctx)
	if err != nil {
		return nil, err
	}

	v := view{
		Config:    cfg,
		Event:     event,
		Date:      format.DateTime(event.StartsAt),
		PriceFrom: format.Money(event.LowestPrice(), org.Currency),
		SoldOut:   event.Status == models.EventStatusSoldOut || event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled,
		Extended:  cfg.Layout == LayoutExtended,
		Brand:     org.Brand,
		Height:    FrameHeight(cfg.Layout),
	}
	for _, tt := range event.TicketTypes {
		v.TicketLines = append(v.TicketLines, ticketLine{Name: tt.Name, Price: format.Money(tt.PriceCents, org.Currency)})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "widget.html", v); err != nil {
		return nil, fmt.Errorf("render widget: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, buf.String(), s.ttl); err != nil {
			s.logger.Warn("widget cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return buf.Bytes(), nil
}
