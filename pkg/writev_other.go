//go:build !linux

package dupdigest

import "io"

func writeChunks(w io.Writer, chunks [][]byte) error {
	return writeChunksSequential(w, chunks)
}
