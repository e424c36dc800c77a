// Package tsdb writes line-protocol payloads to an InfluxDB 1.x compatible
// /write endpoint. It is the daemon's default ingestion transport.
//
// # Wire format
//
// Each Submit is one HTTP POST of the whole payload to
//
//	<url>/write?db=<database>
//
// with no credentials and no precision parameter, so the server stamps every
// line with its arrival time. Any 2xx response counts as stored.
//
// # Usage
//
//	client := tsdb.New(cfg.Ingest.InfluxDBV1)
//	defer client.Close()
//
//	if err := client.Submit(ctx, payload); err != nil {
//	    log.Error("ingestion write failed", "error", err)
//	}
//
// # Error Handling
//
// Submit never retries. Failures are returned wrapped in ErrWriteFailed and
// the caller discards the payload.
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
package tsdb
