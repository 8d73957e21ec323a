// Package swagger embeds the OpenAPI document served under /swagger.
package swagger

import _ "embed"

// Doc is the OpenAPI 2.0 description of the HTTP API
//
//go:embed api.swagger.json
var Doc []byte
