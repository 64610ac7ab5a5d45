// Package config reads and writes the application's rc file: root keys,
// a [notify] section, a [field] section for pitch dimensions and any number
// of inline [theme.NAME] palette sections.
package config

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/theme"
)

// Notify selects which events raise a desktop notification.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Field overrides the default pitch dimensions for new boards.
type Field struct {
	Width  float64
	Height float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Field   Field
	Themes  map[string]*theme.Theme
}

// New creates a Config with defaults. Theme stays empty so the loader can
// fall back to the environment or the built-in palette.
func New() *Config {
	return &Config{
		Field: Field{
			Width:  board.DefaultFieldWidth,
			Height: board.DefaultFieldHeight,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in rc format.
// Parsing the output yields an equivalent Config.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	sb.WriteString("\n[field]\n")
	fmt.Fprintf(&sb, "width = %g\n", c.Field.Width)
	fmt.Fprintf(&sb, "height = %g\n", c.Field.Height)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		writeTheme(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeTheme emits every color field of the palette, walking the struct so
// the rc format stays in sync with the Theme type.
func writeTheme(sb *strings.Builder, t *theme.Theme) {
	fmt.Fprintf(sb, "Name: %s\n", t.Name)
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	rgba := reflect.TypeOf(color.RGBA{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgba {
			continue
		}
		fmt.Fprintf(sb, "%s: %s\n", typ.Field(i).Name, toHex(val.Field(i).Interface().(color.RGBA)))
	}
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
