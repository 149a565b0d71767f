package dupdigest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	TypeID  uint16
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	typeID, ok := HashTypeFromName(name)
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
	return GetHashAlgorithmByType(typeID)
}

// GetHashAlgorithmByType returns the hash algorithm configuration for the given type ID
func GetHashAlgorithmByType(typeID uint16) (*HashAlgorithm, error) {
	alg := &HashAlgorithm{Name: HashTypeName(typeID), TypeID: typeID}
	switch typeID {
	case HashTypeMD5:
		alg.Size = HashSizeMD5
		alg.NewFunc = md5.New
	case HashTypeSHA1:
		alg.Size = HashSizeSHA1
		alg.NewFunc = sha1.New
	case HashTypeSHA256:
		alg.Size = HashSizeSHA256
		alg.NewFunc = sha256.New
	case HashTypeSHA512:
		alg.Size = HashSizeSHA512
		alg.NewFunc = sha512.New
	case HashTypeXXH3128:
		alg.Size = HashSizeXXH3128
		alg.NewFunc = func() hash.Hash { return &xxh3128{Hasher: xxh3.New()} }
	case HashTypeBLAKE3:
		alg.Size = HashSizeBLAKE3
		alg.NewFunc = func() hash.Hash { return blake3.New() }
	default:
		return nil, fmt.Errorf("unsupported hash type ID: %d", typeID)
	}
	return alg, nil
}

// SupportedHashAlgorithms lists the accepted algorithm names
func SupportedHashAlgorithms() []string {
	return []string{"md5", "sha1", "sha256", "sha512", "xxh3-128", "blake3"}
}

// xxh3128 exposes the 128-bit XXH3 digest through hash.Hash; the
// library's own Sum appends only the 64-bit variant.
type xxh3128 struct {
	*xxh3.Hasher
}

func (x *xxh3128) Size() int { return HashSizeXXH3128 }

func (x *xxh3128) Sum(b []byte) []byte {
	sum := x.Sum128().Bytes()
	return append(b, sum[:]...)
}

// Hasher streams files through one reusable buffer into a digest.
// A Hasher is not safe for concurrent use.
type Hasher struct {
	algorithm *HashAlgorithm
	buffer    []byte
}

// NewHasher creates a hasher with a fixed read buffer of bufferSize bytes
func NewHasher(algorithm *HashAlgorithm, bufferSize int) *Hasher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hasher{
		algorithm: algorithm,
		buffer:    make([]byte, bufferSize),
	}
}

// Algorithm returns the algorithm this hasher computes
func (h *Hasher) Algorithm() *HashAlgorithm {
	return h.algorithm
}

// HashFile returns the size and digest of the file at filePath.
// Any open, stat or read failure is returned and no partial digest is produced.
func (h *Hasher) HashFile(filePath string) (size uint64, digest []byte, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	info, err := file.Stat()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	hasher := h.algorithm.NewFunc()
	for {
		n, readErr := file.Read(h.buffer)
		if n > 0 {
			hasher.Write(h.buffer[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, nil, fmt.Errorf("failed to read from file %s: %w", filePath, readErr)
		}
	}

	digest = hasher.Sum(nil)
	if IsDebugEnabled("hash") {
		DebugLog("hash", "%s %s %s", h.algorithm.Name, hex.EncodeToString(digest), filePath)
	}

	return uint64(info.Size()), digest, nil
}

// HashFile calculates the size and digest of a file using the specified algorithm and buffer size
func HashFile(filePath string, algorithm *HashAlgorithm, bufferSize int) (uint64, []byte, error) {
	return NewHasher(algorithm, bufferSize).HashFile(filePath)
}

// HashFileToHexString calculates the digest of a file and returns it as a hex string
func HashFileToHexString(filePath string, algorithm *HashAlgorithm) (string, error) {
	_, digest, err := HashFile(filePath, algorithm, DefaultBufferSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

// HashStringToHexString calculates the digest of a string and returns it as a hex string
func HashStringToHexString(data string, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	io.WriteString(hasher, data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, ok := HashTypeFromName(algorithm); !ok {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: %s)",
			algorithm, strings.Join(SupportedHashAlgorithms(), ", "))
	}
	return nil
}
