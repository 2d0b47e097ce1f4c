// Package config loads the server configuration from the `server:` section
// of an optional YAML file, then applies environment overrides.
//
// Config fields:
//   - Port                 — HTTP/WebSocket listen port (default 3000, env PORT)
//   - StaticDir            — directory with the drawing client (default "public", env STATIC_DIR)
//   - WSPath               — WebSocket endpoint path (default "/ws")
//   - LogLevel             — debug | info | warn | error (default info, env LOG_LEVEL)
//   - ShutdownTimeout      — graceful HTTP shutdown limit (default 5s)
//   - Hub.SendBuffer       — per-client outbound queue depth (default 256)
//   - Hub.MaxMessageBytes  — largest inbound frame accepted (default 4096)
//
// Load(path) applies defaults before unmarshalling, then env overrides, then
// validates. An empty path skips the file. Watch reloads the file on change.
package config
