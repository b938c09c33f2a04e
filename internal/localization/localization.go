// Package localization provides the localized user-facing messages of the API.
// Translations live in JSON files named by language code (e.g. "en.json") inside
// a locales directory.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FallbackLang is used when a key is missing for the requested language.
const FallbackLang = "en"

// Localizer holds the message catalogs, keyed by language then by message key.
type Localizer struct {
	catalogs map[string]map[string]string
	mu       sync.RWMutex
}

// New loads every "<lang>.json" file from dir into a Localizer.
func New(dir string) (*Localizer, error) {
	l := &Localizer{
		catalogs: make(map[string]map[string]string),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", entry.Name(), err)
		}

		l.catalogs[strings.TrimSuffix(entry.Name(), ".json")] = catalog
	}

	if _, ok := l.catalogs[FallbackLang]; !ok {
		return nil, fmt.Errorf("locales directory %s has no %s.json", dir, FallbackLang)
	}

	return l, nil
}

// Message returns the localized message for the key, falling back to
// FallbackLang and finally to the key itself.
func (l *Localizer) Message(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if catalog, ok := l.catalogs[lang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}

	if lang != FallbackLang {
		if msg, ok := l.catalogs[FallbackLang][key]; ok {
			return msg
		}
	}

	return key
}
