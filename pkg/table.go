package dupdigest

import (
	"encoding/hex"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// FileEntry is one successfully hashed file
type FileEntry struct {
	Path   string
	Size   uint64
	Digest []byte
}

// DigestGroup holds every file sharing one digest, in canonical order
type DigestGroup struct {
	key     string // digest bytes as a string; ordered byte-wise
	Entries []FileEntry
}

// Digest returns the raw digest shared by the group
func (g *DigestGroup) Digest() []byte {
	return []byte(g.key)
}

// HashString returns the digest as a hex string
func (g *DigestGroup) HashString() string {
	return hex.EncodeToString([]byte(g.key))
}

// Size returns the size of the first member in canonical order
func (g *DigestGroup) Size() uint64 {
	if len(g.Entries) == 0 {
		return 0
	}
	return g.Entries[0].Size
}

// Paths returns member paths in canonical order
func (g *DigestGroup) Paths() []string {
	paths := make([]string, len(g.Entries))
	for i := range g.Entries {
		paths[i] = g.Entries[i].Path
	}
	return paths
}

// IsDuplicate reports whether the group has at least two members
func (g *DigestGroup) IsDuplicate() bool {
	return len(g.Entries) > 1
}

// insert places entry after any members that do not sort after it
func (g *DigestGroup) insert(entry FileEntry) {
	pos := sort.Search(len(g.Entries), func(i int) bool {
		return compareEntries(&g.Entries[i], &entry) > 0
	})
	g.Entries = slices.Insert(g.Entries, pos, entry)
}

// compareEntries orders by path, then by size
func compareEntries(a, b *FileEntry) int {
	if c := comparePaths(a.Path, b.Path); c != 0 {
		return c
	}
	switch {
	case a.Size < b.Size:
		return -1
	case a.Size > b.Size:
		return 1
	}
	return 0
}

// comparePaths orders paths component by component: the separator sorts
// before every other byte, so "a/b" comes before "a-b".
func comparePaths(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] == filepath.Separator {
			return -1
		}
		if b[i] == filepath.Separator {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// DigestTable maps digests to groups and iterates them in ascending digest order
type DigestTable struct {
	skiplist *zcsl.ZeroCopySkiplist[DigestGroup, string, string]
	files    int
}

// NewDigestTable creates an empty digest table
func NewDigestTable() *DigestTable {
	getKeyFromItem := func(g *DigestGroup) string {
		return g.key
	}

	getItemSize := func(g *DigestGroup) int {
		return len(g.Entries)
	}

	return &DigestTable{
		skiplist: zcsl.MakeZeroCopySkiplist[DigestGroup, string, string](
			16,
			getKeyFromItem,
			getItemSize,
			strings.Compare,
		),
	}
}

// Add files an entry under its digest, creating the group on first sight
func (t *DigestTable) Add(entry FileEntry) {
	key := string(entry.Digest)

	itemPtr, _ := t.skiplist.Find(key)
	if itemPtr == nil {
		group := &DigestGroup{key: key}
		group.insert(entry)
		t.skiplist.Insert(group, SingleContext)
		t.files++
		if IsDebugEnabled("table") {
			DebugLog("table", "new group %s for %s", group.HashString(), entry.Path)
		}
		return
	}

	group := itemPtr.Item()
	group.insert(entry)
	t.files++
	if len(group.Entries) == 2 {
		t.skiplist.UpdateContext(key, DuplicateContext)
	}
	if IsDebugEnabled("table") {
		DebugLog("table", "group %s now has %d members", group.HashString(), len(group.Entries))
	}
}

// Len returns the number of distinct digests
func (t *DigestTable) Len() int {
	return t.skiplist.Length()
}

// Files returns the number of entries added
func (t *DigestTable) Files() int {
	return t.files
}

// Group returns the group for digest, or nil
func (t *DigestTable) Group(digest []byte) *DigestGroup {
	itemPtr, _ := t.skiplist.Find(string(digest))
	if itemPtr == nil {
		return nil
	}
	return itemPtr.Item()
}

// ForEach visits every group in ascending digest order until callback returns false
func (t *DigestTable) ForEach(callback func(*DigestGroup) bool) {
	for current := t.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item()) {
			return
		}
	}
}

// ForEachDuplicate visits groups with two or more members in ascending digest order
func (t *DigestTable) ForEachDuplicate(callback func(*DigestGroup) bool) {
	for current := t.skiplist.First(); current != nil; current = current.Next() {
		if current.Context() != DuplicateContext {
			continue
		}
		if !callback(current.Item()) {
			return
		}
	}
}

// Duplicates returns the groups with two or more members in ascending digest order
func (t *DigestTable) Duplicates() []*DigestGroup {
	var groups []*DigestGroup
	t.ForEachDuplicate(func(g *DigestGroup) bool {
		groups = append(groups, g)
		return true
	})
	return groups
}

// Stats returns the number of groups, duplicate groups and files in duplicate groups
func (t *DigestTable) Stats() (groups, duplicateGroups, duplicateFiles int) {
	t.ForEach(func(g *DigestGroup) bool {
		groups++
		if g.IsDuplicate() {
			duplicateGroups++
			duplicateFiles += len(g.Entries)
		}
		return true
	})
	return groups, duplicateGroups, duplicateFiles
}
