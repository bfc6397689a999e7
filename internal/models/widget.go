package models

type WidgetConfig struct {
	EventID  string `json:"event" form:"event"`
	Theme    string `json:"theme" form:"theme"`
	Color    string `json:"color" form:"color"`
	Branding bool   `json:"branding" form:"branding"`
	Layout   string `json:"layout" form:"layout"`
}

type WidgetSnippet struct {
	Config    WidgetConfig `json:"config"`
	Script    string       `json:"script"`
	IFrame    string       `json:"iframe"`
	IFrameURL string       `json:"iframe_url"`
	EmbedURL  string       `json:"embed_url"`
}
