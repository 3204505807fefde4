// ABOUTME: Request fingerprinting for cache keys and the request log
// ABOUTME: Canonicalizes parameters so logically equal requests share one fingerprint

package dispatch

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint derives a stable identity for an operation invocation.
// Parameters are canonicalized first: keys are sorted, and list values are
// sorted and joined, so {"ids": ["b", "a"]} and {"ids": ["a", "b"]} produce
// the same fingerprint. The digest is for identity, not secrecy.
func Fingerprint(operation string, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(operation)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(canonicalValue(params[k]))
	}

	sum := md5.Sum([]byte(b.String()))
	return operation + ":" + hex.EncodeToString(sum[:])
}

func canonicalValue(v interface{}) string {
	switch val := v.(type) {
	case []string:
		sorted := make([]string, len(val))
		copy(sorted, val)
		sort.Strings(sorted)
		return strings.Join(sorted, ",")
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = canonicalValue(item)
		}
		sort.Strings(parts)
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}
