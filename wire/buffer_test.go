// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkByteOrder(t *testing.T) {
	buf := NewBuffer(nil).AppendUint16(0x1234)
	require.Equal(t, []byte{0x12, 0x34}, buf.Bytes())

	buf = NewBuffer(nil).AppendUint32(0xDEADBEEF)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf.Bytes())
}

func TestAppendAndExtract(t *testing.T) {
	buf := NewBuffer(nil).
		AppendUint8(7).
		AppendInt16(-13).
		AppendUint32(42).
		AppendInt64(-97234).
		AppendBool(true).
		AppendBool(false)
	require.Equal(t, 1+2+4+8+1+1, buf.Len())

	u8, err := buf.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(7), u8)

	i16, err := buf.Int16()
	require.NoError(t, err)
	require.Equal(t, int16(-13), i16)

	u32, err := buf.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(42), u32)

	i64, err := buf.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(-97234), i64)

	b, err := buf.Bool()
	require.NoError(t, err)
	require.True(t, b)
	b, err = buf.Bool()
	require.NoError(t, err)
	require.False(t, b)

	require.Zero(t, buf.Len())
}

func TestExtractionConsumesFromFront(t *testing.T) {
	buf := NewBuffer(nil).AppendUint8(1).AppendUint8(2).AppendUint8(3)

	v, err := buf.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)
	require.Equal(t, 2, buf.Len())

	v, err = buf.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(2), v)
}

func TestInsufficientData(t *testing.T) {
	buf := NewBuffer([]byte{0x01})

	_, err := buf.Uint32()
	require.ErrorIs(t, err, ErrInsufficientData)

	// The failed extraction must not consume anything.
	v, err := buf.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)

	_, err = buf.Uint8()
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestAppendBytesAndExtract(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	buf := NewBuffer(nil).AppendBytes(payload).AppendUint8(9)

	head, err := buf.Extract(3)
	require.NoError(t, err)
	require.Equal(t, payload, head)

	v, err := buf.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(9), v)

	_, err = buf.Extract(1)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestRoundTripThroughRawBytes(t *testing.T) {
	original := NewBuffer(nil).AppendInt32(124234).AppendUint64(1356469817)

	copied := NewBuffer(append([]byte(nil), original.Bytes()...))
	i32, err := copied.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(124234), i32)
	u64, err := copied.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1356469817), u64)
}
