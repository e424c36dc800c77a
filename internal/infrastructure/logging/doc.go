// Package logging sets up the daemon's slog-based diagnostics.
//
// Diagnostics and the console readout never share a stream: the readout
// owns stdout, so log records default to stderr. JSON suits a log shipper
// on a gateway, text suits someone watching a terminal.
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// run() derives a per-process logger and components narrow it further:
//
//	log := logging.New(cfg.Logging, version).With("run_id", uuid.NewString())
//	log.With("component", "mqtt").Warn("broker unreachable", "broker", url)
package logging
