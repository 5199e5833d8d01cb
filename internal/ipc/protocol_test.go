package ipc

import (
	"bytes"
	"encoding/gob"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeWithVersion(w io.Writer, version uint8, cmd Command) error {
	return gob.NewEncoder(w).Encode(envelope{Version: version, Command: cmd})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cmd := Command{
		Kind: CommandNode,
		Node: NodeCommand{
			Kind: NodeInsert,
			Selector: Selector{
				Descriptor: DescriptorFocused,
				Modifier:   ModifierLocal,
				Path:       []Jump{JumpParent, JumpBrother},
			},
			Insert: InsertArgs{Dir: South, Ratio: 30, HasRatio: true, Toggle: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cmd))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cmd, decoded)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Command{Kind: CommandExit}))

	// Re-frame the payload under a bogus version by hand.
	var reframed bytes.Buffer
	require.NoError(t, encodeWithVersion(&reframed, Version+1, Command{Kind: CommandExit}))
	_, err := Decode(&reframed)
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a command")))
	assert.Error(t, err)
}

func TestStateToggle(t *testing.T) {
	assert.Equal(t, Tiled, Float.Toggle())
	assert.Equal(t, Float, Tiled.Toggle())
	assert.Equal(t, Dock, Dock.Toggle())
}

func TestStateFromTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  State
	}{
		{"dock", []string{"_NET_WM_WINDOW_TYPE_DOCK"}, Dock},
		{"toolbar", []string{"_NET_WM_WINDOW_TYPE_TOOLBAR"}, Dock},
		{"menu", []string{"_NET_WM_WINDOW_TYPE_MENU"}, Dock},
		{"dialog", []string{"_NET_WM_WINDOW_TYPE_DIALOG"}, Float},
		{"utility", []string{"_NET_WM_WINDOW_TYPE_UTILITY"}, Float},
		{"splash", []string{"_NET_WM_WINDOW_TYPE_SPLASH"}, Float},
		{"normal", []string{"_NET_WM_WINDOW_TYPE_NORMAL"}, Tiled},
		{"none", nil, Tiled},
		{"dock wins over float", []string{"_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_DOCK"}, Dock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFromTypes(tt.types))
		})
	}
}
