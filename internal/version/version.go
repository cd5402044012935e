// ABOUTME: Version constants
// ABOUTME: Product identity reported in logs
package version

const (
	// Product is the tool suite name.
	Product = "abplay"

	// Version is the release version.
	Version = "0.1.0"
)
