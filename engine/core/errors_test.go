package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	t.Run("Should render a known key for the requested language", func(t *testing.T) {
		err := NewValidationError("es", "importer.errors.importHashRequired")
		assert.Equal(t, 400, err.Code)
		assert.Equal(t, "El hash de importación es obligatorio", err.Message)
	})

	t.Run("Should fall back to the generic validation message for an unknown key", func(t *testing.T) {
		err := NewValidationError("en", "no.such.key")
		assert.Equal(t, 400, err.Code)
		assert.Equal(t, "An error occurred while validating the request", err.Message)
	})

	t.Run("Should build localized not found errors", func(t *testing.T) {
		err := NewNotFoundError("en")
		assert.Equal(t, 404, err.Code)
		assert.Equal(t, "Record not found", err.Message)
	})

	t.Run("Should build forbidden and unauthorized errors", func(t *testing.T) {
		assert.Equal(t, 403, NewForbiddenError("en").Code)
		assert.Equal(t, 401, NewUnauthorizedError("en").Code)
	})
}

func TestCodeOf(t *testing.T) {
	t.Run("Should return the carried code", func(t *testing.T) {
		assert.Equal(t, 404, CodeOf(NewNotFoundError("en")))
		assert.Equal(t, 400, CodeOf(NewValidationMessage("bad input")))
	})

	t.Run("Should unwrap wrapped domain errors", func(t *testing.T) {
		err := fmt.Errorf("destroying team: %w", NewNotFoundError("en"))
		assert.Equal(t, 404, CodeOf(err))
		assert.True(t, IsNotFound(err))
	})

	t.Run("Should degrade unclassified errors to 500", func(t *testing.T) {
		assert.Equal(t, 500, CodeOf(errors.New("boom")))
		assert.Equal(t, 500, CodeOf(nil))
	})
}
