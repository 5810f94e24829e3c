package entity

import "testing"

func TestLocalizedTextResolve(t *testing.T) {
	name := LocalizedText{"en": "Burger", "pt": "Hambúrguer"}

	tests := []struct {
		name          string
		text          LocalizedText
		locale        string
		defaultLocale string
		want          string
	}{
		{"requested locale wins", name, "pt", "en", "Hambúrguer"},
		{"falls back to default", name, "fr", "en", "Burger"},
		{"falls back to first available", name, "fr", "de", "Burger"},
		{"empty entry is skipped", LocalizedText{"pt": "", "en": "Burger"}, "pt", "de", "Burger"},
		{"nil map resolves empty", nil, "en", "en", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Resolve(tt.locale, tt.defaultLocale); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.locale, tt.defaultLocale, got, tt.want)
			}
		})
	}
}
