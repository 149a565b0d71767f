package dupdigest

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Reporter renders the duplicate groups of a digest table
type Reporter struct {
	format string
}

// NewReporter creates a reporter for the given output format
func NewReporter(format string) (*Reporter, error) {
	if format == "" {
		format = DefaultOutputFormat
	}
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return &Reporter{format: strings.ToLower(format)}, nil
}

// Format returns the output format name
func (r *Reporter) Format() string {
	return r.format
}

// Write renders every group with two or more members, in ascending digest
// order, and writes the result to w
func (r *Reporter) Write(w io.Writer, table *DigestTable) error {
	defer VerboseEnter()()

	chunks, err := r.Render(table)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}
	if err := writeChunks(w, chunks); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render produces the report as a list of byte chunks, one per output line
// for the line-oriented formats
func (r *Reporter) Render(table *DigestTable) ([][]byte, error) {
	switch r.format {
	case FormatText:
		return renderText(table), nil
	case FormatFdupes:
		return renderFdupes(table), nil
	case FormatJSON:
		data, err := json.MarshalIndent(NewDuplicateGroups(table), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json report: %w", err)
		}
		return [][]byte{append(data, '\n')}, nil
	case FormatYAML:
		data, err := yaml.Marshal(NewDuplicateGroups(table))
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return [][]byte{data}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", r.format)
	}
}

func renderText(table *DigestTable) [][]byte {
	var lines [][]byte
	table.ForEachDuplicate(func(g *DigestGroup) bool {
		lines = append(lines, []byte(FormatGroupLine(g)))
		return true
	})
	return lines
}

func renderFdupes(table *DigestTable) [][]byte {
	var lines [][]byte
	table.ForEachDuplicate(func(g *DigestGroup) bool {
		var buf bytes.Buffer
		if len(lines) > 0 {
			buf.WriteByte('\n')
		}
		for i := range g.Entries {
			buf.WriteString(g.Entries[i].Path)
			buf.WriteByte('\n')
		}
		lines = append(lines, buf.Bytes())
		return true
	})
	return lines
}

// FormatGroupLine renders a group as "<size> <path> <path>...\n" with each
// path escaped by EscapePath
func FormatGroupLine(g *DigestGroup) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(g.Size(), 10))
	for i := range g.Entries {
		sb.WriteByte(' ')
		sb.WriteString(EscapePath(g.Entries[i].Path))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// EscapePath prefixes every backslash and space with a backslash
func EscapePath(path string) string {
	if !strings.ContainsAny(path, `\ `) {
		return path
	}
	path = strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(path, " ", `\ `)
}

// UnescapePath reverses EscapePath
func UnescapePath(token string) string {
	if !strings.Contains(token, `\`) {
		return token
	}
	var sb strings.Builder
	sb.Grow(len(token))
	for i := 0; i < len(token); i++ {
		if token[i] == '\\' && i+1 < len(token) {
			i++
		}
		sb.WriteByte(token[i])
	}
	return sb.String()
}

// ParseGroupLine splits a text report line back into its size and unescaped paths
func ParseGroupLine(line string) (uint64, []string, error) {
	line = strings.TrimSuffix(line, "\n")

	var tokens []string
	var current strings.Builder
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == ' ':
			tokens = append(tokens, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if escaped {
		current.WriteByte('\\')
	}
	tokens = append(tokens, current.String())

	if len(tokens) < 3 {
		return 0, nil, fmt.Errorf("report line has %d fields, expected a size and at least two paths", len(tokens))
	}

	size, err := strconv.ParseUint(tokens[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid size field %q: %w", tokens[0], err)
	}

	return size, tokens[1:], nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatFdupes, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: text, fdupes, json, yaml)", format)
	}
}

func writeChunksSequential(w io.Writer, chunks [][]byte) error {
	for _, chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// remainingChunks drops the first written bytes from chunks
func remainingChunks(chunks [][]byte, written int) [][]byte {
	for i, chunk := range chunks {
		if written < len(chunk) {
			rest := append([][]byte{chunk[written:]}, chunks[i+1:]...)
			return rest
		}
		written -= len(chunk)
	}
	return nil
}
