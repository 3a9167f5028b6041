package grpcops

import (
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
)

// The HTTP /metrics endpoint scrapes the app registry, so the RPC series
// must land there and not in prometheus's global default registry.
func TestRPCMetricsExportedViaAppRegistry(t *testing.T) {
	rpcHandled.WithLabelValues("/grpc.health.v1.Health/Check", "OK").Inc()
	rpcDuration.WithLabelValues("/grpc.health.v1.Health/Check").Observe(0.002)

	families, err := metrics.DefaultRegistry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	want := map[string]bool{
		"greencart_grpc_server_handled_total":    false,
		"greencart_grpc_server_handling_seconds": false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric %s missing from the app registry", name)
		}
	}
}
