package dupdigest

import (
	"strings"
)

// Context constants for digest table nodes
const (
	SingleContext    = "single"
	DuplicateContext = "duplicate"
)

// Hash type constants
const (
	HashTypeMD5     uint16 = 1 // MD5 (16 bytes)
	HashTypeSHA1    uint16 = 2 // SHA-1 (20 bytes)
	HashTypeSHA256  uint16 = 3 // SHA-256 (32 bytes)
	HashTypeSHA512  uint16 = 4 // SHA-512 (64 bytes)
	HashTypeXXH3128 uint16 = 5 // XXH3 128-bit (16 bytes)
	HashTypeBLAKE3  uint16 = 6 // BLAKE3 (32 bytes)
)

// Hash size constants
const (
	HashSizeMD5     = 16
	HashSizeSHA1    = 20
	HashSizeSHA256  = 32
	HashSizeSHA512  = 64
	HashSizeXXH3128 = 16
	HashSizeBLAKE3  = 32
)

// Defaults used when no configuration overrides them
const (
	DefaultHashAlgorithm = "md5"
	DefaultHashBuffer    = "1MiB"
	DefaultBufferSize    = 1024 * 1024
	DefaultSymlinkMode   = SymlinkModeAll
	DefaultOutputFormat  = FormatText
)

// Symlink modes for directory symlinks
const (
	SymlinkModeAll       = "all"
	SymlinkModeContained = "contained"
	SymlinkModeNone      = "none"
)

// Report formats
const (
	FormatText   = "text"
	FormatFdupes = "fdupes"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// HashTypeName returns the human-readable name for a hash type
func HashTypeName(hashType uint16) string {
	switch hashType {
	case HashTypeMD5:
		return "md5"
	case HashTypeSHA1:
		return "sha1"
	case HashTypeSHA256:
		return "sha256"
	case HashTypeSHA512:
		return "sha512"
	case HashTypeXXH3128:
		return "xxh3-128"
	case HashTypeBLAKE3:
		return "blake3"
	default:
		return "unknown"
	}
}

// HashTypeFromName returns the hash type constant from a name (case-insensitive)
func HashTypeFromName(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "md5":
		return HashTypeMD5, true
	case "sha1":
		return HashTypeSHA1, true
	case "sha256":
		return HashTypeSHA256, true
	case "sha512":
		return HashTypeSHA512, true
	case "xxh3-128", "xxh3":
		return HashTypeXXH3128, true
	case "blake3":
		return HashTypeBLAKE3, true
	default:
		return 0, false
	}
}
