// Package spec embeds the OpenAPI description of the itinerary API.
// The server serves it at /openapi.yaml so the document always matches the
// running binary.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
