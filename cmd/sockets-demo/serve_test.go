// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyServeOverrides(t *testing.T) {
	cmd := newServeCommand()
	require.NoError(t, cmd.Flags().Set("port", "9000"))
	require.NoError(t, cmd.Flags().Set("count", "3"))
	require.NoError(t, cmd.Flags().Set("interval", "250ms"))
	require.NoError(t, cmd.Flags().Set("farewell", "so long"))

	cfg := defaultServeConfig()
	require.NoError(t, applyServeOverrides(cmd.Flags(), &cfg))

	require.Equal(t, uint16(9000), cfg.Port)
	require.Equal(t, 3, cfg.Count)
	require.Equal(t, duration(250*time.Millisecond), cfg.Interval)
	require.Equal(t, "so long", cfg.Farewell)
	// Flags the user never touched leave the loaded config alone.
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.MetricsListen)
}

func TestApplyServeOverridesUntouchedFlags(t *testing.T) {
	cmd := newServeCommand()

	cfg := defaultServeConfig()
	cfg.Port = 4711
	cfg.Farewell = "goodbye"
	require.NoError(t, applyServeOverrides(cmd.Flags(), &cfg))

	require.Equal(t, uint16(4711), cfg.Port)
	require.Equal(t, "goodbye", cfg.Farewell)
}
