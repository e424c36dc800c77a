// Package lineproto renders sensor readings as InfluxDB line protocol and
// collects one cycle's lines into a bounded payload.
//
// Each reading becomes one line with no tags and no timestamp:
//
//	formaldehyde-sensor hcho=12.34,temperature=21.50,humidity=40.20
//
// The store assigns the ingestion time. Floats are written with two fixed
// decimals, counts as plain integers, and NaN as "nan" so a series keeps the
// same fields whether or not a channel was available.
//
// # Usage
//
//	batch := lineproto.NewBatch(1024)
//	for _, r := range readings {
//	    if err := batch.Append(lineproto.Format(r)); err != nil {
//	        log.Warn("line dropped", "error", err)
//	    }
//	}
//	if !batch.IsEmpty() {
//	    dispatcher.Submit(ctx, batch.Bytes())
//	}
package lineproto
