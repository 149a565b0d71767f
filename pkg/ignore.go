package dupdigest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreManager holds regex patterns for paths the scanner must skip
type IgnoreManager struct {
	ignorePath string
	patterns   []*regexp.Regexp
}

// NewIgnoreManager creates an ignore manager with no patterns
func NewIgnoreManager() *IgnoreManager {
	return &IgnoreManager{
		patterns: make([]*regexp.Regexp, 0),
	}
}

// LoadIgnoreFile creates an ignore manager from a pattern file.
// The file is never created; a missing file is an error.
func LoadIgnoreFile(ignorePath string) (*IgnoreManager, error) {
	im := NewIgnoreManager()
	im.ignorePath = ignorePath

	file, err := os.Open(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := im.AddPattern(line); err != nil {
			return nil, fmt.Errorf("invalid regex pattern at line %d: %s - %w", lineNum, line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ignore file: %w", err)
	}

	return im, nil
}

// AddPattern compiles and appends a pattern
func (im *IgnoreManager) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return err
	}
	im.patterns = append(im.patterns, pattern)
	return nil
}

// ShouldIgnore checks a root-relative path against the patterns
func (im *IgnoreManager) ShouldIgnore(relativePath string) bool {
	if im == nil {
		return false
	}

	normalisedPath := filepath.ToSlash(relativePath)
	for _, pattern := range im.patterns {
		if pattern.MatchString(normalisedPath) {
			return true
		}
	}
	return false
}

// HasPatterns returns true if any patterns are loaded
func (im *IgnoreManager) HasPatterns() bool {
	return im != nil && len(im.patterns) > 0
}

// GetIgnoreFilePath returns the file the patterns were loaded from, if any
func (im *IgnoreManager) GetIgnoreFilePath() string {
	return im.ignorePath
}
