package notification

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// LocalizedText maps a OneSignal language code to text.
// Every localized value sent to the API must carry a non-empty "en" entry.
type LocalizedText map[string]string

// Text returns a localized value holding only the default language.
func Text(en string) LocalizedText {
	return LocalizedText{fields.DefaultLanguage: en}
}

// With returns a copy of t with a translation for tag.
// The key is the tag's base language, plus the script when it is explicit (zh-Hans, zh-Hant).
func (t LocalizedText) With(tag language.Tag, text string) LocalizedText {
	out := make(LocalizedText, len(t)+1)
	maps.Copy(out, t)
	out[languageKey(tag)] = text
	return out
}

// Default returns the default language text.
func (t LocalizedText) Default() string {
	return t[fields.DefaultLanguage]
}

// Validate reports ErrMissingDefaultText when the "en" entry is missing or blank.
func (t LocalizedText) Validate() error {
	if strings.TrimSpace(t[fields.DefaultLanguage]) == "" {
		return ErrMissingDefaultText
	}
	return nil
}

// toLocalizedText converts a raw attribute value into LocalizedText.
// A bare string becomes the default language text.
func toLocalizedText(value any) (LocalizedText, error) {
	switch v := value.(type) {
	case LocalizedText:
		return v, nil
	case string:
		return Text(v), nil
	case map[string]string:
		return LocalizedText(v), nil
	case map[string]any:
		out := make(LocalizedText, len(v))
		for lang, text := range v {
			s, ok := text.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q text must be a string, got %T", ErrInvalidArgument, lang, text)
			}
			out[lang] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: localized text must be a string or a language map, got %T", ErrInvalidArgument, value)
	}
}

func languageKey(tag language.Tag) string {
	base, _ := tag.Base()
	key := base.String()
	if script, conf := tag.Script(); conf == language.Exact {
		key += "-" + script.String()
	}
	return key
}
