// Package widget owns the embeddable ticket widget: normalizing the
// configuration that embedding sites pass in, generating the embed snippets
// and rendering the standalone widget page.
package widget

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"organizer-portal/internal/models"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LayoutCompact  = "compact"
	LayoutExtended = "extended"

	DefaultColor = "#5B21B6"
)

func NormalizeTheme(v string) string {
	if strings.ToLower(strings.TrimSpace(v)) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func NormalizeLayout(v string) string {
	if strings.ToLower(strings.TrimSpace(v)) == LayoutExtended {
		return LayoutExtended
	}
	return LayoutCompact
}

// NormalizeColor accepts "#RRGGBB" or "RRGGBB" and returns the upper-cased
// "#RRGGBB" form, or DefaultColor for anything else.
func NormalizeColor(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(v) != 6 {
		return DefaultColor
	}
	for _, ch := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return DefaultColor
		}
	}
	return "#" + strings.ToUpper(v)
}

// ParseBranding reads the branding flag. Missing or unrecognized values keep
// branding on.
func ParseBranding(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func Normalize(cfg models.WidgetConfig) models.WidgetConfig {
	return models.WidgetConfig{
		EventID:  strings.TrimSpace(cfg.EventID),
		Theme:    NormalizeTheme(cfg.Theme),
		Color:    NormalizeColor(cfg.Color),
		Branding: cfg.Branding,
		Layout:   NormalizeLayout(cfg.Layout),
	}
}

// FromQuery reads the long-form parameters used by /widget/embed and the
// snippet API: event, theme, branding, color and layout.
func FromQuery(q url.Values) models.WidgetConfig {
	return Normalize(models.WidgetConfig{
		EventID:  q.Get("event"),
		Theme:    q.Get("theme"),
		Color:    q.Get("color"),
		Branding: ParseBranding(q.Get("branding")),
		Layout:   q.Get("layout"),
	})
}

// FromFrame reads the short iframe parameters: t (theme), c (color without
// '#'), s (layout) and b (branding, only ever sent as b=0).
func FromFrame(eventID string, q url.Values) models.WidgetConfig {
	return Normalize(models.WidgetConfig{
		EventID:  eventID,
		Theme:    q.Get("t"),
		Color:    q.Get("c"),
		Branding: ParseBranding(q.Get("b")),
		Layout:   q.Get("s"),
	})
}

// FrameURL is the iframe source for cfg. cfg must be normalized.
func FrameURL(baseURL string, cfg models.WidgetConfig) string {
	q := url.Values{}
	q.Set("t", cfg.Theme)
	q.Set("c", strings.TrimPrefix(cfg.Color, "#"))
	q.Set("s", cfg.Layout)
	if !cfg.Branding {
		q.Set("b", "0")
	}
	return fmt.Sprintf("%s/widget/frame/%s?%s", strings.TrimRight(baseURL, "/"), url.PathEscape(cfg.EventID), encodeOrdered(q, "t", "c", "s", "b"))
}

// EmbedURL is the long-form standalone widget URL for cfg.
func EmbedURL(baseURL string, cfg models.WidgetConfig) string {
	q := url.Values{}
	q.Set("event", cfg.EventID)
	q.Set("theme", cfg.Theme)
	q.Set("branding", fmt.Sprintf("%t", cfg.Branding))
	q.Set("color", cfg.Color)
	q.Set("layout", cfg.Layout)
	return fmt.Sprintf("%s/widget/embed?%s", strings.TrimRight(baseURL, "/"), encodeOrdered(q, "event", "theme", "branding", "color", "layout"))
}

// url.Values.Encode sorts keys; embedding sites copy these URLs by hand so
// keep the documented parameter order instead.
func encodeOrdered(q url.Values, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := q[k]; ok && len(v) > 0 {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v[0]))
		}
	}
	return strings.Join(parts, "&")
}

// Snippet builds both embed forms for cfg. The configurator page and the
// snippet API both go through here so the two never drift apart.
func Snippet(baseURL string, cfg models.WidgetConfig) models.WidgetSnippet {
	cfg = Normalize(cfg)
	base := strings.TrimRight(baseURL, "/")
	frameURL := FrameURL(base, cfg)

	script := fmt.Sprintf(
		`<div data-tix-widget data-event="%s" data-theme="%s" data-branding="%t" data-color="%s" data-layout="%s"></div>`+"\n"+
			`<script src="%s/widget/embed.js" async></script>`,
		html.EscapeString(cfg.EventID), cfg.Theme, cfg.Branding, cfg.Color, cfg.Layout, html.EscapeString(base),
	)
	iframe := fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="%d" frameborder="0" loading="lazy" title="Tickets"></iframe>`,
		html.EscapeString(frameURL), FrameHeight(cfg.Layout),
	)

	return models.WidgetSnippet{
		Config:    cfg,
		Script:    script,
		IFrame:    iframe,
		IFrameURL: frameURL,
		EmbedURL:  EmbedURL(base, cfg),
	}
}

func FrameHeight(layout string) int {
	if layout == LayoutExtended {
		return 420
	}
	return 220
}
