package dupdigest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxBufferSize caps the hash read buffer
const maxBufferSize = 1 << 30

// ParseHumanSize parses human-readable size strings (e.g., "1MiB", "512KiB", "2M")
// SI suffixes are decimal, IEC suffixes are binary, as go-humanize defines them.
func ParseHumanSize(sizeStr string) (int, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	size, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	if size == 0 {
		return 0, fmt.Errorf("size must be positive: %s", sizeStr)
	}
	if size > maxBufferSize {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}

	return int(size), nil
}

// FormatSize renders a byte count for log output
func FormatSize(size uint64) string {
	return humanize.IBytes(size)
}

// joinPath appends name to dir with exactly one separator and no cleaning,
// so the root keeps the spelling the caller gave it
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// isPathContained reports whether targetPath equals containerPath or lies beneath it
func isPathContained(targetPath, containerPath string) bool {
	targetPath = filepath.Clean(targetPath)
	containerPath = filepath.Clean(containerPath)

	if targetPath == containerPath {
		return true
	}

	containerWithSep := containerPath
	if !strings.HasSuffix(containerWithSep, string(filepath.Separator)) {
		containerWithSep += string(filepath.Separator)
	}
	return strings.HasPrefix(targetPath, containerWithSep)
}
