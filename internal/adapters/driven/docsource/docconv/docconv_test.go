package docconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_CanLoad(t *testing.T) {
	src := NewSource()

	assert.True(t, src.CanLoad("report.pdf"))
	assert.True(t, src.CanLoad("letter.docx"))
	assert.True(t, src.CanLoad("page.HTML"))
	assert.True(t, src.CanLoad("/abs/path/old.doc"))
	assert.False(t, src.CanLoad("notes.txt"))
	assert.False(t, src.CanLoad("readme.md"))
	assert.False(t, src.CanLoad("-"))
	assert.False(t, src.CanLoad("github://owner/repo/report.pdf"))
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "docconv", NewSource().Name())
}
