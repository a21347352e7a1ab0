// Package observability exposes Prometheus metrics for the advice gateway.
//
// Metrics plug into the gateway through advice.Hooks, so the gateway itself stays free of
// any metrics dependency:
//
//	m := observability.NewMetrics(prometheus.DefaultRegisterer)
//	gw := advice.New(gen, advice.WithHooks(m.Hooks()))
package observability
