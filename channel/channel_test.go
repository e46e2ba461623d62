// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package channel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInstantiate(t *testing.T) {
	sender, receiver := New[int]()
	require.True(t, sender.IsOpen())
	require.True(t, receiver.IsOpen())
}

func TestSendAndReceiveSingleValue(t *testing.T) {
	sender, receiver := New[int]()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = sender.Send(42)
	}()

	value, err := receiver.Receive()
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestSendAndReceiveManyValues(t *testing.T) {
	const numValues = 10000
	sender, receiver := New[int]()

	go func() {
		for i := 0; i < numValues; i++ {
			_ = sender.Send(i)
		}
	}()

	for i := 0; i < numValues; i++ {
		value, err := receiver.Receive()
		require.NoError(t, err)
		require.Equal(t, i, value)
	}
}

func TestBidirectionalCommunication(t *testing.T) {
	const numValues = 1000
	a, b := NewBidirectionalPair[int]()

	var count atomic.Int64
	pingPong := func(endpoint *Bidirectional[int]) {
		for i := 0; i < numValues; i++ {
			require.NoError(t, endpoint.Send(i))
			value, err := endpoint.Receive()
			require.NoError(t, err)
			require.Equal(t, i, value)
			count.Add(1)
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		pingPong(a)
	}()
	go func() {
		defer wg.Done()
		pingPong(b)
	}()
	wg.Wait()

	require.Equal(t, int64(2*numValues), count.Load())
}

func TestCannotUseClosedChannel(t *testing.T) {
	t.Run("sender closed", func(t *testing.T) {
		sender, receiver := New[int]()
		sender.Close()
		require.ErrorIs(t, sender.Send(42), ErrChannelClosed)
		_, err := receiver.Receive()
		require.ErrorIs(t, err, ErrChannelClosed)
	})
	t.Run("receiver closed", func(t *testing.T) {
		sender, receiver := New[int]()
		receiver.Close()
		require.ErrorIs(t, sender.Send(42), ErrChannelClosed)
		_, err := receiver.Receive()
		require.ErrorIs(t, err, ErrChannelClosed)
	})
}

func TestCanStillReceiveFromClosedChannel(t *testing.T) {
	sender, receiver := New[int]()
	require.NoError(t, sender.Send(42))
	sender.Close()

	require.False(t, receiver.IsOpen())
	value, err := receiver.Receive()
	require.NoError(t, err)
	require.Equal(t, 42, value)

	_, err = receiver.Receive()
	require.ErrorIs(t, err, ErrChannelClosed)
}

func TestTryReceiveDeliversParkedValueAfterClose(t *testing.T) {
	sender, receiver := New[int]()
	require.NoError(t, sender.Send(42))
	sender.Close()

	value, ok := receiver.TryReceive()
	require.True(t, ok)
	require.Equal(t, 42, value)

	_, ok = receiver.TryReceive()
	require.False(t, ok)
}

func TestTrySendAndTryReceive(t *testing.T) {
	sender, receiver := New[int]()

	_, ok := receiver.TryReceive()
	require.False(t, ok)

	require.True(t, sender.TrySend(1))
	require.False(t, sender.TrySend(2), "slot is already full")

	value, ok := receiver.TryReceive()
	require.True(t, ok)
	require.Equal(t, 1, value)

	sender.Close()
	require.False(t, sender.TrySend(3))
}

func TestSendUnblocksWhenSlotFrees(t *testing.T) {
	sender, receiver := New[int]()
	require.NoError(t, sender.Send(1))

	done := make(chan error, 1)
	go func() {
		done <- sender.Send(2)
	}()

	time.Sleep(20 * time.Millisecond)
	value, err := receiver.Receive()
	require.NoError(t, err)
	require.Equal(t, 1, value)

	require.NoError(t, <-done)
	value, err = receiver.Receive()
	require.NoError(t, err)
	require.Equal(t, 2, value)
}

func TestBidirectionalClose(t *testing.T) {
	a, b := NewBidirectionalPair[string]()
	require.True(t, a.IsOpen())
	require.True(t, b.IsOpen())

	a.Close()
	require.False(t, a.IsOpen())
	require.False(t, b.IsOpen())
	require.ErrorIs(t, b.Send("hello"), ErrChannelClosed)
}
