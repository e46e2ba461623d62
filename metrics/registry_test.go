// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistryCounts(t *testing.T) {
	r := NewRegistry()

	r.ConnectionOpened()
	r.ConnectionOpened()
	r.ConnectionClosed()
	r.BytesSent(100)
	r.BytesSent(50)
	r.BytesReceived(25)

	require.Equal(t, float64(2), testutil.ToFloat64(r.connectionsTotal))
	require.Equal(t, float64(1), testutil.ToFloat64(r.connectionsActive))
	require.Equal(t, float64(150), testutil.ToFloat64(r.bytesSent))
	require.Equal(t, float64(25), testutil.ToFloat64(r.bytesReceived))
}

func TestHandlerServesTextFormat(t *testing.T) {
	r := NewRegistry()
	r.ConnectionOpened()
	r.BytesSent(42)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "sockets_connections_total 1"), body)
	require.True(t, strings.Contains(body, "sockets_sent_bytes_total 42"), body)
}
