// Package config loads flowcanvas configuration.
//
// Configuration is built from the defaults returned by Default, then each
// layer added to a Loader in order, then FLOWCANVAS_* environment
// overrides. Layers may be JSON or YAML; only the keys present in a layer
// replace earlier values, and arrays such as canvas.blocks are replaced
// whole.
//
//	loader := config.NewLoader()
//	loader.AddLayer("configs/base.yaml")
//	loader.AddLayer("configs/production.json")
//
//	cfg, err := loader.Load()
//	if err != nil {
//		return err
//	}
//	ed := editor.New(cfg.EditorOptions())
//
// Durations such as server.read_timeout accept Go duration strings ("30s").
//
// Environment overrides:
//
//	FLOWCANVAS_LISTEN_ADDR          server.listen_addr
//	FLOWCANVAS_METRICS_PORT         metrics.port
//	FLOWCANVAS_NATS_URL             event_feed.url
//	FLOWCANVAS_EVENT_FEED_ENABLED   event_feed.enabled
//
// Files are read with size, nesting and path-traversal limits.
package config
