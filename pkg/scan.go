package dupdigest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ScannedPath is a regular file discovered by the scanner
type ScannedPath struct {
	Path    string // Root joined with the entry names, as spelt by the caller
	RelPath string // Slash-separated path relative to the root
}

// Scanner enumerates regular files beneath a root directory
type Scanner struct {
	symlinkMode   string
	ignoreManager *IgnoreManager
}

// NewScanner creates a scanner. An empty symlink mode means SymlinkModeAll.
func NewScanner(symlinkMode string, ignoreManager *IgnoreManager) *Scanner {
	if symlinkMode == "" {
		symlinkMode = DefaultSymlinkMode
	}
	return &Scanner{
		symlinkMode:   symlinkMode,
		ignoreManager: ignoreManager,
	}
}

// dirIdentity identifies a directory independently of the path used to reach it
type dirIdentity struct {
	Dev uint64
	Ino uint64
}

// ancestry is the chain of directories above a queued directory
type ancestry struct {
	id     dirIdentity
	parent *ancestry
}

func (a *ancestry) contains(id dirIdentity) bool {
	for cur := a; cur != nil; cur = cur.parent {
		if cur.id == id {
			return true
		}
	}
	return false
}

type scanItem struct {
	path      string
	relPath   string
	ancestors *ancestry
}

func statIdentity(path string) (dirIdentity, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return dirIdentity{}, false
	}
	return dirIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true
}

// Walk returns every regular file reachable from rootPath. Directories that
// cannot be read contribute nothing and are not reported as errors.
func (s *Scanner) Walk(rootPath string) []ScannedPath {
	defer VerboseEnter()()

	var resolvedRoot string
	if s.symlinkMode == SymlinkModeContained {
		resolvedRoot = resolvePath(rootPath)
	}

	var files []ScannedPath
	stack := []scanItem{{path: rootPath}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id, haveID := statIdentity(current.path)
		if haveID && current.ancestors.contains(id) {
			VerboseLog(2, "skipping directory cycle at %s", current.path)
			continue
		}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			VerboseLog(2, "cannot read directory %s: %v", current.path, err)
			continue
		}

		ancestors := current.ancestors
		if haveID {
			ancestors = &ancestry{id: id, parent: current.ancestors}
		}

		var subdirs []scanItem
		for _, entry := range entries {
			fullPath := joinPath(current.path, entry.Name())
			relPath := entry.Name()
			if current.relPath != "" {
				relPath = current.relPath + "/" + entry.Name()
			}

			if s.ignoreManager.ShouldIgnore(relPath) {
				DebugLog("scan", "ignored %s", relPath)
				continue
			}

			mode := entry.Type()
			if mode&fs.ModeSymlink != 0 {
				targetInfo, err := os.Stat(fullPath)
				if err != nil {
					continue // broken symlink
				}
				mode = targetInfo.Mode().Type()
				if mode.IsDir() && !s.followDirSymlink(fullPath, resolvedRoot) {
					DebugLog("scan", "not following directory symlink %s", fullPath)
					continue
				}
			}

			switch {
			case mode.IsDir():
				subdirs = append(subdirs, scanItem{path: fullPath, relPath: relPath, ancestors: ancestors})
			case mode.IsRegular():
				DebugLog("scan", "found file %s", relPath)
				files = append(files, ScannedPath{Path: fullPath, RelPath: relPath})
			}
		}

		// Push in reverse so subdirectories are visited in name order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	VerboseLog(2, "scan of %s found %d files", rootPath, len(files))
	return files
}

// followDirSymlink applies the symlink mode to a symlink whose target is a directory
func (s *Scanner) followDirSymlink(linkPath, resolvedRoot string) bool {
	switch s.symlinkMode {
	case SymlinkModeNone:
		return false
	case SymlinkModeContained:
		if resolvedRoot == "" {
			return false
		}
		target := resolvePath(linkPath)
		return target != "" && isPathContained(target, resolvedRoot)
	default:
		return true
	}
}

// resolvePath returns the absolute, symlink-free form of path or "" if it cannot be resolved
func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return ""
	}
	return abs
}

// ValidateSymlinkMode validates that a symlink mode is supported
func ValidateSymlinkMode(mode string) error {
	switch mode {
	case SymlinkModeAll, SymlinkModeContained, SymlinkModeNone:
		return nil
	default:
		return fmt.Errorf("unsupported symlink mode: %s (supported: all, contained, none)", mode)
	}
}
