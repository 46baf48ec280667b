package remotemsg

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	frameHeaderSize = 4

	// readChunkSize caps how much of a frame body a single read request
	// asks for. Large frames (album art) arrive over several reads.
	readChunkSize = 4096
)

// ReadFrame reads one length-prefixed frame and returns its payload. A clean
// peer close before the header yields io.EOF; a close mid-frame yields a
// wrapped io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint32(header[:]))

	payload := make([]byte, length)
	for filled := 0; filled < length; {
		chunk := length - filled
		if chunk > readChunkSize {
			chunk = readChunkSize
		}
		n, err := io.ReadFull(r, payload[filled:filled+chunk])
		filled += n
		if err != nil {
			return nil, fmt.Errorf("read frame body (%d of %d bytes): %w", filled, length, err)
		}
	}
	return payload, nil
}

// WriteFrame writes payload prefixed with its big-endian length as a single
// write, so concurrent writers cannot interleave partial frames.
func WriteFrame(w io.Writer, payload []byte) error {
	frame := make([]byte, frameHeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame[:frameHeaderSize], uint32(len(payload)))
	copy(frame[frameHeaderSize:], payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
