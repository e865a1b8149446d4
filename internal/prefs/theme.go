package prefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/nutri-cli/internal/store"
)

// ThemeKey is the fixed slot for the UI theme preference.
const ThemeKey = "theme"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(v string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(v))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme %q (expected light or dark)", v)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// GetTheme returns the stored theme, or fallback when none has been chosen.
func GetTheme(ctx context.Context, kv *store.KV, fallback Theme) (Theme, error) {
	v, ok, err := kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", err
	}
	if !ok {
		if fallback == "" {
			fallback = ThemeLight
		}
		return fallback, nil
	}
	return ParseTheme(v)
}

func SetTheme(ctx context.Context, kv *store.KV, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return kv.Set(ctx, ThemeKey, string(t))
}
