// Package docs expone el documento OpenAPI de la API (servido en /docs y /api/openapi.json).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// JSON documento OpenAPI 2.0 de la API.
//
//go:embed swagger.json
var JSON []byte

// SwaggerInfo metadatos del documento registrado en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Violett API",
	Description:      "Inventario, rentas y ventas de la boutique Violett à.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(JSON),
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
