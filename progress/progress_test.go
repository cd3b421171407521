package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainWriterSteps(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, 1000)
	for done := int64(0); done <= 1000; done += 50 {
		b.Update(done)
	}
	b.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "progress:   0% (0/1000)", lines[0])
	assert.Equal(t, "progress:  50% (500/1000)", lines[5])
	assert.Equal(t, "progress: 100% (1000/1000)", lines[10])
}

func TestRender(t *testing.T) {
	got := render(50, 100, 50, 40)
	assert.Len(t, got, 40-1)
	assert.True(t, strings.HasPrefix(got, "[#########"))
	assert.True(t, strings.HasSuffix(got, "  50% 50/100"))

	narrow := render(1, 2, 50, 5)
	assert.Equal(t, "[#####.....]  50% 1/2", narrow)
}

func TestZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 0).Update(0)
	assert.Equal(t, "progress: 100% (0/0)\n", buf.String())
}
