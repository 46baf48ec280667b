package remotemsg

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
	"testing/iotest"
)

func TestWriteFrame_HeaderIsBigEndianLength(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 300)

	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	frame := buf.Bytes()
	wantHeader := []byte{0x00, 0x00, 0x01, 0x2c} // 300
	if !reflect.DeepEqual(frame[:4], wantHeader) {
		t.Fatalf("header = %x, want %x", frame[:4], wantHeader)
	}
	if !bytes.Equal(frame[4:], payload) {
		t.Fatalf("body differs from payload")
	}
}

func TestReadFrame_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "small", payload: []byte("hello")},
		{name: "empty", payload: []byte{}},
		{name: "spans several chunks", payload: bytes.Repeat([]byte{0x42}, 3*readChunkSize+17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFrame(&buf, tt.payload); err != nil {
				t.Fatalf("WriteFrame error: %v", err)
			}
			got, err := ReadFrame(&buf)
			if err != nil {
				t.Fatalf("ReadFrame error: %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Fatalf("ReadFrame = %d bytes, want %d", len(got), len(tt.payload))
			}
		})
	}
}

// The body accumulates across short reads; a reader that returns one byte at
// a time must still produce the whole payload.
func TestReadFrame_PartialReads(t *testing.T) {
	payload := bytes.Repeat([]byte("xyz"), 2000)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	got, err := ReadFrame(iotest.OneByteReader(&buf))
	if err != nil {
		t.Fatalf("ReadFrame error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("ReadFrame = %d bytes, want %d", len(got), len(payload))
	}
}

func TestReadFrame_CleanCloseIsEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ReadFrame on closed stream = %v, want io.EOF", err)
	}
}

func TestReadFrame_TruncatedHeader(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x01}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadFrame with 2-byte header = %v, want unexpected EOF", err)
	}
}

func TestReadFrame_TruncatedBody(t *testing.T) {
	// Header declares 100 bytes; the peer closes after 40.
	frame := append([]byte{0x00, 0x00, 0x00, 0x64}, bytes.Repeat([]byte{0x01}, 40)...)
	_, err := ReadFrame(bytes.NewReader(frame))
	if err == nil {
		t.Fatal("ReadFrame on truncated body = nil error, want failure")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadFrame on truncated body = %v, want unexpected EOF", err)
	}
}
