package mqtt

import "strings"

// DefaultTopicPrefix roots the topics when no prefix is configured.
const DefaultTopicPrefix = "boimebubble"

// Topics builds the topic names under a configurable prefix.
//
//	topics := mqtt.NewTopics("air")
//	topics.Telemetry() // "air/telemetry"
//	topics.Status()    // "air/status"
type Topics struct {
	prefix string
}

// NewTopics returns builders rooted at prefix. Surrounding slashes are
// trimmed; an empty prefix falls back to DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the root every topic hangs off.
func (t Topics) Prefix() string {
	return t.prefix
}

// Telemetry is where each cycle's line-protocol payload is published.
//
// Example: boimebubble/telemetry
func (t Topics) Telemetry() string {
	return t.prefix + "/telemetry"
}

// Status carries the retained online/offline marker and the Last Will.
//
// Example: boimebubble/status
func (t Topics) Status() string {
	return t.prefix + "/status"
}
