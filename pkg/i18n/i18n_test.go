package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("Should resolve a key for the requested language", func(t *testing.T) {
		msg := Translate("es", "errors.notFound.message", nil)
		assert.Equal(t, "Registro no encontrado", msg)
	})

	t.Run("Should fall back to English for an unknown language", func(t *testing.T) {
		msg := Translate("fr", "errors.notFound.message", nil)
		assert.Equal(t, "Record not found", msg)
	})

	t.Run("Should return the key verbatim when untranslated", func(t *testing.T) {
		msg := Translate("en", "entities.team.errors.unique.owner", nil)
		assert.Equal(t, "entities.team.errors.unique.owner", msg)
	})

	t.Run("Should resolve nested unique constraint keys", func(t *testing.T) {
		msg := Translate("en", "entities.team.errors.unique.name", nil)
		assert.Equal(t, "The team name must be unique", msg)
	})
}

func TestExists(t *testing.T) {
	t.Run("Should report existing keys", func(t *testing.T) {
		assert.True(t, Exists("en", "importer.errors.importHashRequired"))
		assert.True(t, Exists("hi", "errors.forbidden.message"))
	})

	t.Run("Should count the English fallback as existing", func(t *testing.T) {
		assert.True(t, Exists("fr", "errors.validation.message"))
	})

	t.Run("Should report missing keys", func(t *testing.T) {
		assert.False(t, Exists("en", "entities.team.errors.unique.owner"))
		assert.False(t, Exists("en", "no.such.key"))
	})
}

func TestSupported(t *testing.T) {
	t.Run("Should list the default language first", func(t *testing.T) {
		tags := Supported()
		assert.Equal(t, DefaultLanguage, tags[0])
		assert.Len(t, tags, 3)
	})
}
