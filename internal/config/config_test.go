package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultInsert(), cfg.Insert)
	assert.False(t, cfg.PointerFollows)
	assert.False(t, cfg.FocusFollows)
	assert.Equal(t, []string{"1"}, cfg.DesktopNames)
	assert.False(t, cfg.DesktopsPinned)
	assert.Equal(t, uint8(0), cfg.Gaps)
	assert.Equal(t, uint32(0x000000), cfg.BorderNormal)
	assert.Equal(t, uint32(0xffffff), cfg.BorderFocused)
	assert.Equal(t, uint16(1), cfg.BorderWidth)
	assert.Equal(t, Padding{}, cfg.Padding)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
insert:
  dir: south
  ratio: 30
desktops:
  names: [web, code, chat]
  pinned: true
window:
  gaps: 8
border:
  normal: "1e1e2e"
  focused: "#89b4fa"
  width: 2
padding:
  top: 24
focus_follows_pointer: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Insert{Dir: ipc.South, Ratio: 30}, cfg.Insert)
	assert.Equal(t, []string{"web", "code", "chat"}, cfg.DesktopNames)
	assert.True(t, cfg.DesktopsPinned)
	assert.Equal(t, uint8(8), cfg.Gaps)
	assert.Equal(t, uint32(0x1e1e2e), cfg.BorderNormal)
	assert.Equal(t, uint32(0x89b4fa), cfg.BorderFocused)
	assert.Equal(t, uint16(2), cfg.BorderWidth)
	assert.Equal(t, uint16(24), cfg.Padding.Top)
	assert.True(t, cfg.FocusFollows)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadDirection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("insert:\n  dir: up\n"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadClampsRatio(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("insert:\n  ratio: 99\n"), 0o644))
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int8(90), cfg.Insert.Ratio)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "ff0000", want: 0xff0000},
		{in: "#00ff00", want: 0x00ff00},
		{in: "000000", want: 0},
		{in: "zzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, int8(10), ClampRatio(-20))
	assert.Equal(t, int8(10), ClampRatio(9))
	assert.Equal(t, int8(50), ClampRatio(50))
	assert.Equal(t, int8(90), ClampRatio(91))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/tmp/yaxiwm/ipc", SocketPath("/tmp/yaxiwm"))
	assert.Equal(t, "/tmp/yaxiwm/autostart.sh", AutostartPath("/tmp/yaxiwm"))
}
