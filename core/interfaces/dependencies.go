// ABOUTME: Dependencies container provides dependency injection for infrastructure adapters
// ABOUTME: Bundles the external collaborators most components need

package interfaces

// Dependencies holds the external dependencies shared by most components.
type Dependencies struct {
	// HTTPClient provides outgoing HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
