package dupdigest

import (
	"fmt"
)

// DuplicateGroup represents a group of files with the same digest
type DuplicateGroup struct {
	Hash  string   `json:"hash" yaml:"hash"`
	Size  uint64   `json:"size" yaml:"size"`
	Files []string `json:"files" yaml:"files"`
	Count int      `json:"count" yaml:"count"`
}

// NewDuplicateGroups converts the reportable groups of a table, in report order.
// The result is never nil so encoders emit an empty list rather than null.
func NewDuplicateGroups(table *DigestTable) []DuplicateGroup {
	result := make([]DuplicateGroup, 0)
	table.ForEachDuplicate(func(g *DigestGroup) bool {
		result = append(result, DuplicateGroup{
			Hash:  g.HashString(),
			Size:  g.Size(),
			Files: g.Paths(),
			Count: len(g.Entries),
		})
		return true
	})
	return result
}

// Options configures a Finder. The zero value reproduces the default tool:
// md5 digests, a 1 MiB buffer, all directory symlinks followed.
type Options struct {
	Algorithm   string
	BufferSize  int
	SymlinkMode string
	Relative    bool           // Record paths relative to the root
	Ignore      *IgnoreManager // Optional exclusion patterns
}

// Stats summarises one scan
type Stats struct {
	FilesFound  int    // Regular files discovered by traversal
	FilesHashed int    // Files hashed and added to the table
	FilesFailed int    // Files excluded because they could not be read
	BytesHashed uint64 // Total size of hashed files
}

// Finder runs the traverse, hash, group pipeline for a directory tree
type Finder struct {
	scanner *Scanner
	hasher  *Hasher
	opts    Options
}

// NewFinder validates options and creates a finder
func NewFinder(opts Options) (*Finder, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultHashAlgorithm
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.SymlinkMode == "" {
		opts.SymlinkMode = DefaultSymlinkMode
	}
	if err := ValidateSymlinkMode(opts.SymlinkMode); err != nil {
		return nil, err
	}

	algorithm, err := GetHashAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to get hash algorithm: %w", err)
	}

	return &Finder{
		scanner: NewScanner(opts.SymlinkMode, opts.Ignore),
		hasher:  NewHasher(algorithm, opts.BufferSize),
		opts:    opts,
	}, nil
}

// Scan walks rootPath and groups every readable regular file by digest.
// Unreadable directories and files are skipped; an invalid root yields an empty table.
func (f *Finder) Scan(rootPath string) (*DigestTable, Stats) {
	defer VerboseEnter()()

	var stats Stats
	table := NewDigestTable()

	paths := f.scanner.Walk(rootPath)
	stats.FilesFound = len(paths)

	for _, scanned := range paths {
		size, digest, err := f.hasher.HashFile(scanned.Path)
		if err != nil {
			stats.FilesFailed++
			VerboseLog(2, "skipping %s: %v", scanned.Path, err)
			continue
		}

		path := scanned.Path
		if f.opts.Relative {
			path = scanned.RelPath
		}

		table.Add(FileEntry{Path: path, Size: size, Digest: digest})
		stats.FilesHashed++
		stats.BytesHashed += size
	}

	groups, dupGroups, dupFiles := table.Stats()
	VerboseLog(1, "scanned %s: %d files, %d hashed (%s), %d unreadable",
		rootPath, stats.FilesFound, stats.FilesHashed, FormatSize(stats.BytesHashed), stats.FilesFailed)
	VerboseLog(1, "%d distinct %s digests, %d duplicate groups covering %d files",
		groups, f.hasher.Algorithm().Name, dupGroups, dupFiles)

	return table, stats
}

// FindDuplicates returns groups of files with identical digests in ascending digest order
func (f *Finder) FindDuplicates(rootPath string) []DuplicateGroup {
	table, _ := f.Scan(rootPath)
	return NewDuplicateGroups(table)
}

// FindDuplicates scans rootPath with default options
func FindDuplicates(rootPath string) ([]DuplicateGroup, error) {
	finder, err := NewFinder(Options{})
	if err != nil {
		return nil, err
	}
	return finder.FindDuplicates(rootPath), nil
}
