package compression

import (
	"bytes"
	"io"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func decompress(t *testing.T, src []byte) []byte {
	t.Helper()

	var out bytes.Buffer
	if _, err := io.Copy(&out, lz4.NewReader(bytes.NewReader(src))); err != nil {
		t.Fatalf("decompress: %s", err)
	}
	return out.Bytes()
}

func TestLz4Frame(t *testing.T) {
	payload := bytes.Repeat([]byte("subject: quarterly report\r\n"), 200)

	var out bytes.Buffer
	if err := CompressLz4(payload, &out); err != nil {
		t.Fatalf("compress: %s", err)
	}

	if out.Len() >= len(payload) {
		t.Errorf("repetitive payload did not shrink: %d >= %d", out.Len(), len(payload))
	}

	if restored := decompress(t, out.Bytes()); !bytes.Equal(restored, payload) {
		t.Errorf("restored payload differs")
	}
}

func TestLz4FrameEmptyPayload(t *testing.T) {
	var out bytes.Buffer
	if err := CompressLz4(nil, &out); err != nil {
		t.Fatalf("compress: %s", err)
	}

	if restored := decompress(t, out.Bytes()); len(restored) != 0 {
		t.Errorf("expected an empty payload, got %d bytes", len(restored))
	}
}
