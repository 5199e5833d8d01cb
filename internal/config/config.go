// Package config holds the flat record of tunables the manager runs with.
// Initial values come from $HOME/.config/yaxiwm/config.yaml when present.
// At runtime the yaxc config commands rewrite the desktop, gap, border,
// padding and follow settings, and yaxc node insert rewrites Insert; the
// log settings are read once at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/spf13/viper"
)

const (
	ratioMin = 10
	ratioMax = 90
)

// Insert is the (direction, ratio) pair controlling how a new leaf is
// grafted onto the tree.
type Insert struct {
	Dir   ipc.Direction
	Ratio int8
}

// DefaultInsert is what toggle-reverts fall back to.
func DefaultInsert() Insert {
	return Insert{Dir: ipc.East, Ratio: 50}
}

// ClampRatio bounds a split ratio to [10,90].
func ClampRatio(ratio int8) int8 {
	if ratio < ratioMin {
		return ratioMin
	}
	if ratio > ratioMax {
		return ratioMax
	}
	return ratio
}

func clampRatioInt(ratio int) int8 {
	if ratio < ratioMin {
		return ratioMin
	}
	if ratio > ratioMax {
		return ratioMax
	}
	return int8(ratio)
}

// Padding is deducted from every screen area before tiling.
type Padding struct {
	Top    uint16
	Bottom uint16
	Left   uint16
	Right  uint16
}

// Config is the full tunables record.
type Config struct {
	Insert         Insert
	PointerFollows bool
	FocusFollows   bool
	DesktopNames   []string
	DesktopsPinned bool
	Gaps           uint8
	BorderNormal   uint32
	BorderFocused  uint32
	BorderWidth    uint16
	Padding        Padding
	LogLevel       string
	LogPretty      bool
}

// Dir returns the manager's config directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home: %w", err)
	}
	dir := filepath.Join(home, ".config", "yaxiwm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", dir, err)
	}
	return dir, nil
}

// SocketPath is where the IPC listener binds.
func SocketPath(dir string) string {
	return filepath.Join(dir, "ipc")
}

// AutostartPath is the script run once at startup.
func AutostartPath(dir string) string {
	return filepath.Join(dir, "autostart.sh")
}

// ParseColor parses a hexadecimal RGB colour, with or without a leading #.
func ParseColor(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("config: colour %q: %w", s, err)
	}
	return uint32(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("insert.dir", "east")
	v.SetDefault("insert.ratio", 50)
	v.SetDefault("pointer_follows_focus", false)
	v.SetDefault("focus_follows_pointer", false)
	v.SetDefault("desktops.names", []string{"1"})
	v.SetDefault("desktops.pinned", false)
	v.SetDefault("window.gaps", 0)
	v.SetDefault("border.normal", "000000")
	v.SetDefault("border.focused", "ffffff")
	v.SetDefault("border.width", 1)
	v.SetDefault("padding.top", 0)
	v.SetDefault("padding.bottom", 0)
	v.SetDefault("padding.left", 0)
	v.SetDefault("padding.right", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

func parseDirection(s string) (ipc.Direction, error) {
	switch strings.ToLower(s) {
	case "north":
		return ipc.North, nil
	case "south":
		return ipc.South, nil
	case "west":
		return ipc.West, nil
	case "east":
		return ipc.East, nil
	}
	return 0, fmt.Errorf("config: direction %q", s)
}

// Load reads the config file under dir, if any, on top of the defaults.
// A missing file is not an error; a malformed one is.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	insertDir, err := parseDirection(v.GetString("insert.dir"))
	if err != nil {
		return nil, err
	}
	normal, err := ParseColor(v.GetString("border.normal"))
	if err != nil {
		return nil, err
	}
	focused, err := ParseColor(v.GetString("border.focused"))
	if err != nil {
		return nil, err
	}

	names := v.GetStringSlice("desktops.names")
	if len(names) == 0 {
		names = []string{"1"}
	}

	return &Config{
		Insert: Insert{
			Dir:   insertDir,
			Ratio: clampRatioInt(v.GetInt("insert.ratio")),
		},
		PointerFollows: v.GetBool("pointer_follows_focus"),
		FocusFollows:   v.GetBool("focus_follows_pointer"),
		DesktopNames:   names,
		DesktopsPinned: v.GetBool("desktops.pinned"),
		Gaps:           uint8(v.GetUint("window.gaps")),
		BorderNormal:   normal,
		BorderFocused:  focused,
		BorderWidth:    uint16(v.GetUint("border.width")),
		Padding: Padding{
			Top:    uint16(v.GetUint("padding.top")),
			Bottom: uint16(v.GetUint("padding.bottom")),
			Left:   uint16(v.GetUint("padding.left")),
			Right:  uint16(v.GetUint("padding.right")),
		},
		LogLevel:  v.GetString("log.level"),
		LogPretty: v.GetBool("log.pretty"),
	}, nil
}

// Default returns the built-in configuration without touching the
// filesystem.
func Default() *Config {
	return &Config{
		Insert:        DefaultInsert(),
		DesktopNames:  []string{"1"},
		BorderNormal:  0x000000,
		BorderFocused: 0xffffff,
		BorderWidth:   1,
		LogLevel:      "info",
	}
}
