//go:build linux

package dupdigest

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// writeChunks writes chunks to w in order. Files are written with writev,
// IOV_MAX buffers at a time.
func writeChunks(w io.Writer, chunks [][]byte) error {
	file, ok := w.(*os.File)
	if !ok {
		return writeChunksSequential(w, chunks)
	}

	for offset := 0; offset < len(chunks); offset += linuxIOVMax {
		end := min(offset+linuxIOVMax, len(chunks))
		if err := writevChunks(file, chunks[offset:end]); err != nil {
			return err
		}
	}
	return nil
}

func writevChunks(file *os.File, chunks [][]byte) error {
	iovecs := make([]syscall.Iovec, 0, len(chunks))
	expected := 0
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		iovec := syscall.Iovec{Base: &chunk[0]}
		iovec.SetLen(len(chunk))
		iovecs = append(iovecs, iovec)
		expected += len(chunk)
	}
	if len(iovecs) == 0 {
		return nil
	}

	nw, err := vectorio.WritevRaw(file.Fd(), iovecs)
	if err != nil {
		return fmt.Errorf("writev failed: %w", err)
	}
	if nw < expected {
		// Short write: finish the remainder with plain writes
		DebugLog("report", "writev wrote %d of %d bytes", nw, expected)
		return writeChunksSequential(file, remainingChunks(chunks, nw))
	}
	return nil
}

// linuxIOVMax is UIO_MAXIOV, the kernel's limit on buffers per writev call
const linuxIOVMax = 1024
