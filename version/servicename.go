package version

import "os"

// EnvServiceName overrides the service name reported to the trace collector.
const EnvServiceName = "PLUGINHOST_SERVICE_NAME"

// DefaultServiceName is the service name used when EnvServiceName is empty.
const DefaultServiceName = "pluginhost"

// ServiceName returns the service name of the process
func ServiceName() string {
	if name := os.Getenv(EnvServiceName); name != "" {
		return name
	}

	return DefaultServiceName
}
