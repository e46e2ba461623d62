// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package wire provides a message buffer that encodes integral values in
// network byte order (big endian), so peers on different architectures
// agree on the representation.
package wire

import (
	"encoding/binary"
	"errors"
)

// ErrInsufficientData is returned when a buffer holds fewer bytes than the
// requested value needs.
var ErrInsufficientData = errors.New("not enough data to extract value")

// Buffer accumulates encoded values at the back and extracts them from the
// front. The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer that takes ownership of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffered bytes. The slice aliases the buffer's
// storage.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// AppendBytes appends raw bytes without any encoding.
func (b *Buffer) AppendBytes(data []byte) *Buffer {
	b.data = append(b.data, data...)
	return b
}

// AppendUint8 appends a single byte.
func (b *Buffer) AppendUint8(v uint8) *Buffer {
	b.data = append(b.data, v)
	return b
}

// AppendUint16 appends a 16-bit value in network byte order.
func (b *Buffer) AppendUint16(v uint16) *Buffer {
	b.data = binary.BigEndian.AppendUint16(b.data, v)
	return b
}

// AppendUint32 appends a 32-bit value in network byte order.
func (b *Buffer) AppendUint32(v uint32) *Buffer {
	b.data = binary.BigEndian.AppendUint32(b.data, v)
	return b
}

// AppendUint64 appends a 64-bit value in network byte order.
func (b *Buffer) AppendUint64(v uint64) *Buffer {
	b.data = binary.BigEndian.AppendUint64(b.data, v)
	return b
}

// AppendInt8 appends a signed byte.
func (b *Buffer) AppendInt8(v int8) *Buffer {
	return b.AppendUint8(uint8(v))
}

// AppendInt16 appends a signed 16-bit value in network byte order.
func (b *Buffer) AppendInt16(v int16) *Buffer {
	return b.AppendUint16(uint16(v))
}

// AppendInt32 appends a signed 32-bit value in network byte order.
func (b *Buffer) AppendInt32(v int32) *Buffer {
	return b.AppendUint32(uint32(v))
}

// AppendInt64 appends a signed 64-bit value in network byte order.
func (b *Buffer) AppendInt64(v int64) *Buffer {
	return b.AppendUint64(uint64(v))
}

// AppendBool appends a bool as a single byte, 1 for true.
func (b *Buffer) AppendBool(v bool) *Buffer {
	if v {
		return b.AppendUint8(1)
	}
	return b.AppendUint8(0)
}

func (b *Buffer) take(n int) ([]byte, error) {
	if len(b.data) < n {
		return nil, ErrInsufficientData
	}
	head := b.data[:n]
	b.data = b.data[n:]
	return head, nil
}

// Uint8 extracts a single byte from the front of the buffer.
func (b *Buffer) Uint8() (uint8, error) {
	head, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return head[0], nil
}

// Uint16 extracts a 16-bit value in network byte order.
func (b *Buffer) Uint16() (uint16, error) {
	head, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(head), nil
}

// Uint32 extracts a 32-bit value in network byte order.
func (b *Buffer) Uint32() (uint32, error) {
	head, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(head), nil
}

// Uint64 extracts a 64-bit value in network byte order.
func (b *Buffer) Uint64() (uint64, error) {
	head, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(head), nil
}

// Int8 extracts a signed byte.
func (b *Buffer) Int8() (int8, error) {
	v, err := b.Uint8()
	return int8(v), err
}

// Int16 extracts a signed 16-bit value in network byte order.
func (b *Buffer) Int16() (int16, error) {
	v, err := b.Uint16()
	return int16(v), err
}

// Int32 extracts a signed 32-bit value in network byte order.
func (b *Buffer) Int32() (int32, error) {
	v, err := b.Uint32()
	return int32(v), err
}

// Int64 extracts a signed 64-bit value in network byte order.
func (b *Buffer) Int64() (int64, error) {
	v, err := b.Uint64()
	return int64(v), err
}

// Bool extracts a bool encoded as a single byte.
func (b *Buffer) Bool() (bool, error) {
	v, err := b.Uint8()
	return v != 0, err
}

// Extract removes the first n bytes from the buffer and returns them.
func (b *Buffer) Extract(n int) ([]byte, error) {
	head, err := b.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, head)
	return out, nil
}
