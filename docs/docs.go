// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/plagiarism/submit": {
            "post": {
                "description": "Accepts multipart form, url-encoded form or JSON. Files require the organization API.",
                "consumes": ["multipart/form-data", "application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["plagiarism"],
                "summary": "Submit text or a file for a plagiarism check",
                "parameters": [
                    {"type": "string", "description": "Text to check (at least 80 characters)", "name": "text", "in": "formData"},
                    {"type": "string", "default": "en", "description": "Text language", "name": "language", "in": "formData"},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "formData"},
                    {"type": "file", "description": "Document to check (max 10MB)", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Submission accepted", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Server not configured", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider unreachable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/plagiarism/status/{id}": {
            "get": {
                "description": "Polls the provider and normalizes the status. Use the text id from the submission, never the report id.",
                "produces": ["application/json"],
                "tags": ["plagiarism"],
                "summary": "Get plagiarism check status",
                "parameters": [
                    {"type": "string", "description": "Text ID from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Maximum attempts", "name": "maxRetries", "in": "query"},
                    {"type": "integer", "default": 2000, "description": "Delay between attempts in milliseconds", "name": "delay", "in": "query"},
                    {"type": "boolean", "description": "Keep polling while the check is processing", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Normalized status", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "403": {"description": "Wrong identifier", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Still processing after all attempts", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Check failed upstream", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/plagiarism/report/{id}": {
            "get": {
                "description": "Fetches the report by text id. Call after the status reports completed.",
                "produces": ["application/json"],
                "tags": ["plagiarism"],
                "summary": "Get the plagiarism report",
                "parameters": [
                    {"type": "string", "description": "Text ID from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Maximum attempts", "name": "maxRetries", "in": "query"},
                    {"type": "integer", "default": 2000, "description": "Delay between attempts in milliseconds", "name": "delay", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "403": {"description": "Wrong identifier", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/plagiarism/report/{id}/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["plagiarism"],
                "summary": "Export the plagiarism report as CSV or XLSX",
                "parameters": [
                    {"type": "string", "description": "Text ID from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report export", "schema": {"type": "file"}},
                    "400": {"description": "Invalid ID or format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/ai/submit": {
            "post": {
                "description": "Accepts multipart form, url-encoded form or JSON. Files require the organization API.",
                "consumes": ["multipart/form-data", "application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["ai-detection"],
                "summary": "Submit text or a file for AI-generated content detection",
                "parameters": [
                    {"type": "string", "description": "Text to check (at least 80 characters)", "name": "text", "in": "formData"},
                    {"type": "string", "description": "Provider group for single-user submissions", "name": "group_id", "in": "formData"},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "formData"},
                    {"type": "file", "description": "Document to check (max 10MB)", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Submission accepted", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Server not configured", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider unreachable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/ai/status/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ai-detection"],
                "summary": "Get AI-detection status",
                "parameters": [
                    {"type": "string", "description": "Identifier from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Maximum attempts", "name": "maxRetries", "in": "query"},
                    {"type": "integer", "default": 2000, "description": "Delay between attempts in milliseconds", "name": "delay", "in": "query"},
                    {"type": "boolean", "description": "Keep polling while the check is processing", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Normalized status", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Still processing after all attempts", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/ai/report/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ai-detection"],
                "summary": "Get the AI-detection report",
                "parameters": [
                    {"type": "string", "description": "Identifier from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Maximum attempts", "name": "maxRetries", "in": "query"},
                    {"type": "integer", "default": 2000, "description": "Delay between attempts in milliseconds", "name": "delay", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/ai/report/{id}/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["ai-detection"],
                "summary": "Export the AI-detection report as CSV or XLSX",
                "parameters": [
                    {"type": "string", "description": "Identifier from the submission response", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"},
                    {"type": "boolean", "description": "Use the organization API", "name": "useOrgApi", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report export", "schema": {"type": "file"}},
                    "400": {"description": "Invalid ID or format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string", "example": "Invalid ID format. Please use the original text ID from the submission response, not the report ID."},
                "code": {"type": "string", "example": "VALIDATION_ERROR"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Plagiarism Relay API",
	Description:      "Relay for plagiarism and AI-generated content checks against single-user and organization provider APIs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
