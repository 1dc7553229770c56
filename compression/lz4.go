package compression

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// CompressLz4 writes src to output as a single lz4 frame.
func CompressLz4(src []byte, output io.Writer) error {
	zw := lz4.NewWriter(output)

	if _, err := zw.Write(src); err != nil {
		return fmt.Errorf("unable to compress %d bytes: %w", len(src), err)
	}

	return zw.Close()
}
