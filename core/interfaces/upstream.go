// ABOUTME: Upstream provider client boundary consumed by the dispatcher
// ABOUTME: The dispatcher is provider-agnostic; only this interface knows the wire format

package interfaces

import (
	"context"
	"encoding/json"
)

// UpstreamClient executes a single named operation against the provider API.
//
// The returned payload is an opaque JSON-compatible value; the dispatcher
// caches it without inspecting it. Errors are classified by the
// implementation into the core error taxonomy (see core/errors) so the rate
// limiter can decide whether a failure is worth retrying.
type UpstreamClient interface {
	// Call executes operation with params using apiKey for authentication.
	// apiKey is empty for operations that do not consume a credential.
	Call(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error)
}
