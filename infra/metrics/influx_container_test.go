package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/model"
)

// startInflux starts an InfluxDB 2.7 container initialised with a known
// org, bucket and token. The test is skipped when docker is unavailable.
func startInflux(ctx context.Context, t *testing.T) string {
	t.Helper()
	tc.SkipIfProviderIsNotHealthy(t)
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "admin",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "adminpass",
			"DOCKER_INFLUXDB_INIT_ORG":         "org",
			"DOCKER_INFLUXDB_INIT_BUCKET":      "bucket",
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": "token",
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	t.Cleanup(func() { _ = cont.Terminate(context.Background()) })
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func TestInfluxSink_Container(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	url := startInflux(ctx, t)

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: url, Token: "token", Org: "org", Bucket: "bucket"})
	influx, ok := sink.(*InfluxSink)
	require.True(t, ok, "expected healthy influx sink")
	defer influx.Close()

	err := influx.RecordVehicleOutcomes([]coremetrics.VehicleOutcome{{
		RunID: "it", VehicleID: "veh0001", Status: model.StatusStranded, DistanceKM: 10, Time: time.Now(),
	}})
	require.NoError(t, err)
	require.NoError(t, influx.RecordRound(coremetrics.RoundStats{RunID: "it", Round: 1, Running: 1, Time: time.Now()}))
}
