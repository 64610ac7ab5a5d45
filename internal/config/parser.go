package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/bfleague/haxfootball-board/internal/theme"
)

// Parse reads configuration from an io.Reader. Keys accept either "k = v" or
// "k: v"; unknown keys and sections are ignored for forward compatibility.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()

	var section string
	var curTheme *theme.Theme

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			curTheme = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start from defaults so missing keys stay sensible.
				curTheme = theme.Default()
				curTheme.Name = name
				cfg.Themes[name] = curTheme
			}
			continue
		}

		key, value, ok := cutKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case curTheme != nil:
			err = setThemeField(curTheme, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "field":
			err = setFieldDim(&cfg.Field, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

// cutKeyValue splits "k = v" or "k: v" and strips surrounding quotes from
// the value.
func cutKeyValue(line string) (key, value string, ok bool) {
	if strings.Contains(line, "=") {
		key, value, _ = strings.Cut(line, "=")
	} else if strings.Contains(line, ":") {
		key, value, _ = strings.Cut(line, ":")
	} else {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setFieldDim(f *Field, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if v <= 0 {
		return fmt.Errorf("field %s must be positive, got %g", key, v)
	}
	switch strings.ToLower(key) {
	case "width":
		f.Width = v
	case "height":
		f.Height = v
	}
	return nil
}

func setThemeField(t *theme.Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}

	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil // unknown keys are ignored
}

// parseColor parses a hex color string or an SVG 1.1 color name. Duplicated
// from the theme parser, which keeps it unexported.
func parseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		if named, found := colornames.Map[strings.ToLower(s)]; found {
			return named, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
