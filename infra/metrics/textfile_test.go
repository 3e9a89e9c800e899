package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
)

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := newPromSink(t, reg)
	require.NoError(t, sink.RecordRound(coremetrics.RoundStats{Round: 1, Running: 2}))

	path := filepath.Join(t.TempDir(), "chargeplan.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "simulation_rounds_total 1"))
}
