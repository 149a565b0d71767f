package dupdigest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"1MiB", 1 << 20},
		{"512KiB", 512 * 1024},
		{"4096", 4096},
		{"64k", 64000},
		{" 2MB ", 2000000},
		{"1GiB", 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHumanSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"", "0", "-1", "huge", "2GiB"} {
		_, err := ParseHumanSize(bad)
		assert.Error(t, err, "ParseHumanSize(%q)", bad)
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "1.0 MiB", FormatSize(1<<20))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "./a.txt", joinPath(".", "a.txt"))
	assert.Equal(t, "/a", joinPath("/", "a"))
	assert.Equal(t, "dir/a", joinPath("dir/", "a"))
	assert.Equal(t, "dir/./a", joinPath("dir/.", "a"))
	assert.Equal(t, "a", joinPath("", "a"))
}

func TestIsPathContained(t *testing.T) {
	assert.True(t, isPathContained("/root/a", "/root"))
	assert.True(t, isPathContained("/root", "/root"))
	assert.True(t, isPathContained("/root/a/b/", "/root/"))
	assert.False(t, isPathContained("/rootless", "/root"))
	assert.False(t, isPathContained("/", "/root"))
	assert.True(t, isPathContained("/anything", "/"))
}
