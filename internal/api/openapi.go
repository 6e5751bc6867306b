package api

import _ "embed"

// OpenAPISpec is the request contract enforced by the validator middleware
//
//go:embed openapi.yaml
var OpenAPISpec []byte
