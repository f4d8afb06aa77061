package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port, "port flag should exist")
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	doc := mcpServeCmd.Flags().Lookup("doc")
	require.NotNil(t, doc, "doc flag should exist")
	assert.Equal(t, "d", doc.Shorthand)

	watch := mcpServeCmd.Flags().Lookup("watch")
	require.NotNil(t, watch, "watch flag should exist")
	assert.Equal(t, "false", watch.DefValue)
}

func TestIsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))

	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{name: "existing file", source: path, want: true},
		{name: "stdin", source: "-", want: false},
		{name: "github location", source: "github://owner/repo/readme.md", want: false},
		{name: "missing file", source: filepath.Join(t.TempDir(), "absent.txt"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLocalFile(tt.source))
		})
	}
}
