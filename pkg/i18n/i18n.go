// Package i18n renders user-facing messages from embedded locale
// catalogs. Lookup falls back to English, and an untranslated key is
// returned verbatim so a missing entry never breaks a response.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is the fallback locale for untranslated languages.
var DefaultLanguage = language.English

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.Hindi,
}

var bundle *goi18n.Bundle

func init() {
	bundle = goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, tag := range supported {
		name := fmt.Sprintf("locales/%s.json", tag.String())
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			panic(fmt.Sprintf("i18n: loading %s: %v", name, err))
		}
	}
}

// Supported returns the locales the catalogs cover, default first.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Translate resolves key for lang, falling back to the default
// language and finally to the key itself. data fills {{.Name}} style
// placeholders when the message declares any.
func Translate(lang, key string, data map[string]any) string {
	loc := goi18n.NewLocalizer(bundle, lang, DefaultLanguage.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Exists reports whether key resolves for lang, counting the default
// language fallback.
func Exists(lang, key string) bool {
	loc := goi18n.NewLocalizer(bundle, lang, DefaultLanguage.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: key})
	return err == nil && msg != ""
}
