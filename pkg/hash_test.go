package dupdigest

import (
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestGetHashAlgorithm(t *testing.T) {
	tests := []struct {
		name     string
		typeID   uint16
		size     int
		expected string
	}{
		{"md5", HashTypeMD5, HashSizeMD5, "md5"},
		{"MD5", HashTypeMD5, HashSizeMD5, "md5"},
		{"sha1", HashTypeSHA1, HashSizeSHA1, "sha1"},
		{"sha256", HashTypeSHA256, HashSizeSHA256, "sha256"},
		{"sha512", HashTypeSHA512, HashSizeSHA512, "sha512"},
		{"xxh3-128", HashTypeXXH3128, HashSizeXXH3128, "xxh3-128"},
		{"xxh3", HashTypeXXH3128, HashSizeXXH3128, "xxh3-128"},
		{"blake3", HashTypeBLAKE3, HashSizeBLAKE3, "blake3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, err := GetHashAlgorithm(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.typeID, alg.TypeID)
			assert.Equal(t, tt.expected, alg.Name)
			assert.Equal(t, tt.size, alg.Size)

			// Digest length must match the advertised size
			h := alg.NewFunc()
			h.Write([]byte("hello"))
			assert.Len(t, h.Sum(nil), tt.size)
			assert.Equal(t, tt.size, h.Size())
		})
	}

	_, err := GetHashAlgorithm("crc32")
	assert.Error(t, err)
	assert.Error(t, ValidateHashAlgorithm("crc32"))
	assert.NoError(t, ValidateHashAlgorithm("blake3"))
}

func TestHashFileMD5(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"hello.txt": "hello"})

	alg, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	size, digest, err := HashFile(filepath.Join(dir, "hello.txt"), alg, DefaultBufferSize)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), size)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", hex.EncodeToString(digest))

	hexDigest, err := HashFileToHexString(filepath.Join(dir, "hello.txt"), alg)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", hexDigest)
	assert.Equal(t, hexDigest, HashStringToHexString("hello", alg))
}

func TestHashFileEmpty(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"empty": ""})

	alg, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	size, digest, err := HashFile(filepath.Join(dir, "empty"), alg, DefaultBufferSize)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), size)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", hex.EncodeToString(digest))
}

func TestHashFileBufferSizeIndependent(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("0123456789abcdef", 4096) + "tail"
	writeTree(t, dir, map[string]string{"big": content})
	path := filepath.Join(dir, "big")

	for _, name := range SupportedHashAlgorithms() {
		t.Run(name, func(t *testing.T) {
			alg, err := GetHashAlgorithm(name)
			require.NoError(t, err)

			_, whole, err := HashFile(path, alg, len(content)+1)
			require.NoError(t, err)

			for _, bufferSize := range []int{1, 7, 4096, 65536} {
				size, digest, err := HashFile(path, alg, bufferSize)
				require.NoError(t, err)
				assert.Equal(t, uint64(len(content)), size)
				assert.Equal(t, whole, digest, "buffer size %d", bufferSize)
			}
		})
	}
}

func TestHasherReuse(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a": "hello", "b": "world", "c": "hello"})

	alg, err := GetHashAlgorithm("sha256")
	require.NoError(t, err)
	hasher := NewHasher(alg, 2)

	_, a, err := hasher.HashFile(filepath.Join(dir, "a"))
	require.NoError(t, err)
	_, b, err := hasher.HashFile(filepath.Join(dir, "b"))
	require.NoError(t, err)
	_, c, err := hasher.HashFile(filepath.Join(dir, "c"))
	require.NoError(t, err)

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
}

func TestHashFileXXH3Matches128BitOneShot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"f": "hello"})

	alg, err := GetHashAlgorithm("xxh3-128")
	require.NoError(t, err)

	_, digest, err := HashFile(filepath.Join(dir, "f"), alg, 2)
	require.NoError(t, err)

	want := xxh3.Hash128([]byte("hello")).Bytes()
	assert.Equal(t, want[:], digest)
}

func TestHashFileErrors(t *testing.T) {
	alg, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	_, digest, err := HashFile(filepath.Join(t.TempDir(), "missing"), alg, DefaultBufferSize)
	assert.Error(t, err)
	assert.Nil(t, digest)

	// A directory opens but cannot be read
	_, digest, err = HashFile(t.TempDir(), alg, DefaultBufferSize)
	assert.Error(t, err)
	assert.Nil(t, digest)
}
