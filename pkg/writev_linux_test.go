//go:build linux

package dupdigest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChunks_FileBeyondIOVMax(t *testing.T) {
	var chunks [][]byte
	var expected bytes.Buffer
	for i := 0; i < linuxIOVMax*2+17; i++ {
		chunk := []byte(fmt.Sprintf("%d line %d\n", i, i))
		if i%100 == 0 {
			chunk = nil
		}
		chunks = append(chunks, chunk)
		expected.Write(chunk)
	}

	path := filepath.Join(t.TempDir(), "report")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, writeChunks(file, chunks))
	require.NoError(t, file.Close())

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected.String(), string(written))
}

func TestWriteChunks_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunks(&buf, [][]byte{[]byte("a"), []byte("b\n")}))
	assert.Equal(t, "ab\n", buf.String())
}

func TestReporter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	file, err := os.Create(path)
	require.NoError(t, err)

	reporter, err := NewReporter(FormatText)
	require.NoError(t, err)
	require.NoError(t, reporter.Write(file, reportTable()))
	require.NoError(t, file.Close())

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3 x\\ y x\\\\y\n5 dir/a.txt dir/b.txt\n", string(written))
}
