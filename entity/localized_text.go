package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
)

// LocalizedText stores a display string per locale code ("en", "pt", ...)
// as a JSON blob column.
type LocalizedText map[string]string

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *LocalizedText) Scan(value any) error {
	if value == nil {
		*t = LocalizedText{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("localized text: unsupported column type")
	}
	if len(b) == 0 {
		*t = LocalizedText{}
		return nil
	}
	return json.Unmarshal(b, t)
}

// Resolve picks the display string for locale, falling back to the
// default locale, then to the first available entry (sorted, so the
// result is stable).
func (t LocalizedText) Resolve(locale, defaultLocale string) string {
	if s, ok := t[locale]; ok && s != "" {
		return s
	}
	if s, ok := t[defaultLocale]; ok && s != "" {
		return s
	}
	keys := make([]string, 0, len(t))
	for k, v := range t {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return t[keys[0]]
}
