// Package mqtt publishes cycle payloads to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publishing each cycle's line-protocol payload to <prefix>/telemetry
//   - A retained online/offline marker on <prefix>/status
//   - Last Will and Testament (LWT) so a crashed daemon still reads offline
//
// # Architecture
//
// MQTT is an opt-in alternative to the InfluxDB write endpoint. The payload
// is the same bytes the InfluxDB transports send; a Telegraf mqtt_consumer
// with data_format = "influx" can forward it unchanged.
//
//	boimebubble → MQTT Broker → Telegraf / any subscriber
//
// # Security Considerations
//
//   - Use TLS when the broker is not on the local host (cfg.Broker.TLS=true)
//   - Credentials should come from the environment, not the config file
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.Ingest.MQTT, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Submit(ctx, payload)
package mqtt
