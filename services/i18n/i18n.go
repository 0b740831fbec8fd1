package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var fs embed.FS

// translations stores flattened keys: "hu" -> "nav.cases" -> "Ügyek"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	defaultLang  = "hu"
)

// Load initializes the translations from the embedded JSON files, one per language.
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", result, flat)
		translations[lang] = flat
		log.Printf("Loaded locale: %s (%d keys)", lang, len(flat))
	}

	return nil
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		newKey := k
		if prefix != "" {
			newKey = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(newKey, child, result)
		case string:
			result[newKey] = child
		default:
			result[newKey] = fmt.Sprintf("%v", child)
		}
	}
}

// SetDefaultLanguage changes the fallback language. Unknown languages are ignored.
func SetDefaultLanguage(lang string) {
	mutex.Lock()
	defer mutex.Unlock()
	if _, ok := translations[lang]; ok {
		defaultLang = lang
	}
}

// DefaultLanguage returns the fallback language
func DefaultLanguage() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return defaultLang
}

// IsSupported checks if a locale file was loaded for lang
func IsSupported(lang string) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	_, ok := translations[lang]
	return ok
}

// Languages returns the loaded language codes, sorted
func Languages() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// T retrieves a translation for the given key using the language from the context.
// A key missing in the target language falls back to the default language,
// and then to the key itself.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate retrieves a translation for a specific language code.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != defaultLang {
		if trans, ok := translations[defaultLang]; ok {
			if val, ok := trans[key]; ok {
				return format(val, args...)
			}
		}
	}

	return key
}

// format replaces {var} placeholders with values from args if present.
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// WithLocale stores lang in ctx
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale extracts the locale set by the Locale middleware, or the default language.
func GetLocale(ctx context.Context) string {
	if ctx != nil {
		if val, ok := ctx.Value(LocaleContextKey).(string); ok && val != "" {
			return val
		}
	}
	return DefaultLanguage()
}
