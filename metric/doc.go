// Package metric provides Prometheus metrics for flowcanvas.
//
// MetricsRegistry owns a private prometheus.Registry with the editor metrics
// (Metrics), Go runtime and process collectors, and any component metrics added
// through the MetricsRegistrar methods. EditorObserver plugs into an editor as
// an editor.Observer and turns editor events into counter increments. Server
// exposes the registry over HTTP.
//
//	registry := metric.NewMetricsRegistry()
//	ed.AddObserver(metric.NewEditorObserver(registry.CoreMetrics(), catalog))
//
//	server := metric.NewServer(9090, "/metrics", registry, logger)
//	go server.Run(ctx)
//
// Exposed series:
//
//	flowcanvas_nodes_created_total{kind}
//	flowcanvas_edges_created_total
//	flowcanvas_edges_rejected_total
//	flowcanvas_drops_ignored_total{reason}
//	flowcanvas_menu_transitions_total{state}
//	flowcanvas_change_entries_total{target,status}
//	flowcanvas_sessions_active
//	flowcanvas_events_received_total{type,status}
//	flowcanvas_event_duration_seconds{type}
package metric
