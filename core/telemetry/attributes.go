package telemetry

import (
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys set on routing spans.
const (
	ContractKey = attribute.Key("pluginhost.contract")
	MethodKey   = attribute.Key("pluginhost.method")
	PluginKey   = attribute.Key("pluginhost.plugin")
	MethodsKey  = attribute.Key("pluginhost.methods")
)

// Contract returns the contract name attribute.
func Contract(name string) attribute.KeyValue {
	return ContractKey.String(name)
}

// Method returns the method name attribute.
func Method(name string) attribute.KeyValue {
	return MethodKey.String(name)
}

// Plugin returns the plugin id attribute.
func Plugin(id uuid.UUID) attribute.KeyValue {
	return PluginKey.String(id.String())
}

// Methods returns the attribute carrying the number of routed methods.
func Methods(n int) attribute.KeyValue {
	return MethodsKey.Int(n)
}
