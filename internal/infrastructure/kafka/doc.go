// Package kafka publishes cycle payloads to a Kafka topic.
//
// Each cycle becomes one record: the value is the newline-separated
// line-protocol payload and the key is the device name, so every cycle
// from one installation lands on the same partition in order.
//
// Writes are synchronous with a single attempt. A failed cycle is logged
// and discarded by the acquisition loop like any other dispatch failure.
//
// Usage:
//
//	producer := kafka.New(cfg.Ingest.Kafka, cfg.Device.Name)
//	defer producer.Close()
//
//	err := producer.Submit(ctx, payload)
package kafka
