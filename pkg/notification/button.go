package notification

import "github.com/dmitrymomot/onesignal/pkg/fields"

// ActionButton is a mobile notification action button.
type ActionButton struct {
	ID   string
	Text string
	Icon string
}

// WebActionButton is a web push action button. An empty URL keeps the
// browser from opening a page when the button is clicked.
type WebActionButton struct {
	ID   string
	Text string
	Icon string
	URL  string
}

func actionButtons(buttons []ActionButton) []map[string]string {
	out := make([]map[string]string, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, map[string]string{
			"id":   b.ID,
			"text": b.Text,
			"icon": b.Icon,
		})
	}
	return out
}

func webActionButtons(buttons []WebActionButton) []map[string]string {
	out := make([]map[string]string, 0, len(buttons))
	for _, b := range buttons {
		url := b.URL
		if url == "" {
			url = fields.WebButtonDoNotOpen
		}
		out = append(out, map[string]string{
			"id":   b.ID,
			"text": b.Text,
			"icon": b.Icon,
			"url":  url,
		})
	}
	return out
}
