package localization_test

import (
	"advisorlink/backend/internal/localization"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	en := `{"error.chat_closed": "This chat has been closed.", "error.internal": "Something went wrong."}`
	uk := `{"error.chat_closed": "Цей чат закрито."}`

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "uk.json"), []byte(uk), 0o644))
	return dir
}

// TestLocalizerMessage verifies direct lookup, fallback to English, and the
// key-as-last-resort behavior.
func TestLocalizerMessage(t *testing.T) {
	// Arrange
	loc, err := localization.New(writeLocales(t))
	assert.NoError(t, err)

	// Assert
	assert.Equal(t, "This chat has been closed.", loc.Message("en", "error.chat_closed"))
	assert.Equal(t, "Цей чат закрито.", loc.Message("uk", "error.chat_closed"))
	// Key absent in uk falls back to en
	assert.Equal(t, "Something went wrong.", loc.Message("uk", "error.internal"))
	// Unknown language falls back to en
	assert.Equal(t, "This chat has been closed.", loc.Message("de", "error.chat_closed"))
	// Unknown key falls back to the key itself
	assert.Equal(t, "error.nope", loc.Message("en", "error.nope"))
}

// TestLocalizerNew_RequiresFallbackCatalog verifies a locales dir without
// en.json is rejected at startup.
func TestLocalizerNew_RequiresFallbackCatalog(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "uk.json"), []byte(`{}`), 0o644))

	_, err := localization.New(dir)

	assert.Error(t, err)
}
