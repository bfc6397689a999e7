package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"organizer-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errMissing = errors.New("missing")

type fakeSource struct {
	events map[string]models.Event
	calls  int
}

func (f *fakeSource) GetOrganizer(context.Context) (models.Organizer, error) {
	return models.Organizer{Currency: "EUR", Brand: "Northlight Tickets"}, nil
}

func (f *fakeSource) GetEvent(_ context.Context, id string) (models.Event, error) {
	f.calls++
	e, ok := f.events[id]
	if !ok {
		return models.Event{}, errMissing
	}
	return e, nil
}

type mapCache struct {
	data map[string]string
	err  error
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key, html string, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = html
	return nil
}

func newSource() *fakeSource {
	return &fakeSource{events: map[string]models.Event{
		"evt_live": {
			ID: "evt_live", Name: "Harbour Lights", Venue: "Pier 7", City: "Hamburg",
			StartsAt: time.Date(2026, 11, 10, 18, 0, 0, 0, time.UTC), Status: models.EventStatusOnSale,
			TicketURL: "https://tickets.example/hl",
			TicketTypes: []models.TicketType{
				{Name: "Day Pass", PriceCents: 4900},
				{Name: "VIP", PriceCents: 19900},
			},
		},
		"evt_gone":  {ID: "evt_gone", Name: "Jazz", Status: models.EventStatusSoldOut},
		"evt_draft": {ID: "evt_draft", Name: "Gala", Status: models.EventStatusDraft},
	}}
}

func newService(t *testing.T, src Source, cache Cache) *Service {
	t.Helper()
	svc, err := NewService(src, cache, time.Minute, func(err error) bool { return errors.Is(err, errMissing) }, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestRender(t *testing.T) {
	svc := newService(t, newSource(), nil)
	ctx := context.Background()

	out, err := svc.Render(ctx, models.WidgetConfig{EventID: "evt_live", Theme: "dark", Color: "#ff0000", Branding: true})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Harbour Lights")
	assert.Contains(t, html, `class="tix dark compact"`)
	assert.Contains(t, html, "--accent: #FF0000")
	assert.Contains(t, html, "Tickets from <strong>€49.00</strong>")
	assert.Contains(t, html, "Powered by Northlight Tickets")
	assert.Contains(t, html, `href="https://tickets.example/hl"`)

	out, err = svc.Render(ctx, models.WidgetConfig{EventID: "evt_live", Layout: "extended", Branding: false})
	require.NoError(t, err)
	html = string(out)
	assert.Contains(t, html, "<span>VIP</span><span>€199.00</span>")
	assert.NotContains(t, html, "Powered by")

	out, err = svc.Render(ctx, models.WidgetConfig{EventID: "evt_gone", Branding: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Sold out")
}

func TestRender_Unavailable(t *testing.T) {
	svc := newService(t, newSource(), nil)
	for _, id := range []string{"", "evt_missing", "evt_draft"} {
		_, err := svc.Render(context.Background(), models.WidgetConfig{EventID: id})
		assert.ErrorIs(t, err, ErrUnavailable, id)
	}
}

func TestRender_Cache(t *testing.T) {
	src := newSource()
	cache := &mapCache{data: map[string]string{}}
	svc := newService(t, src, cache)
	cfg := models.WidgetConfig{EventID: "evt_live", Branding: true}

	first, err := svc.Render(context.Background(), cfg)
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "second render served from cache")
	assert.Contains(t, cache.data, CacheKey(Normalize(cfg)))
}

func TestRender_CacheFailureFallsBack(t *testing.T) {
	src := newSource()
	svc := newService(t, src, &mapCache{err: errors.New("redis down")})

	out, err := svc.Render(context.Background(), models.WidgetConfig{EventID: "evt_live", Branding: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Harbour Lights")
}
