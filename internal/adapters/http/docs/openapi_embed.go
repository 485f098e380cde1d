package docs

import _ "embed"

// OpenAPI holds the embedded API description.
//
//go:embed openapi.yaml
var OpenAPI []byte
