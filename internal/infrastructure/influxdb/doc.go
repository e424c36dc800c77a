// Package influxdb writes line-protocol payloads to InfluxDB 2.x.
//
// It wraps the official influxdb-client-go v2 library. Each Submit is one
// blocking write of the whole payload through WriteAPIBlocking.WriteRecord,
// so the lines reach the bucket exactly as the daemon formatted them and the
// server assigns the timestamps.
//
// # Usage
//
//	cfg := config.InfluxDBV2Config{
//	    URL:    "http://localhost:8086",
//	    Token:  os.Getenv("BOIMEBUBBLE_INFLUXDB_TOKEN"),
//	    Org:    "home",
//	    Bucket: "sensors",
//	}
//
//	client := influxdb.New(cfg)
//	defer client.Close()
//
//	if err := client.Submit(ctx, payload); err != nil {
//	    log.Error("ingestion write failed", "error", err)
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
//
// # Error Handling
//
// Submit does not retry. Errors are wrapped in ErrWriteFailed.
package influxdb
