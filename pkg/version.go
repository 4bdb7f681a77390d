// Package fertadvisor holds build information of the application.
package fertadvisor

var (
	// Version of the application, set by the build.
	Version = "v0.1.0"
	// Build timestamp, set by the build.
	Build = "n/a"
)
