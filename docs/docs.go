package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/services": {
            "get": {
                "tags": ["services"],
                "summary": "List services",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/entities.Service"}
                        }
                    }
                }
            },
            "post": {
                "tags": ["services"],
                "summary": "Add a service",
                "description": "The id is assigned by the server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Service data",
                        "required": true,
                        "schema": {"$ref": "#/definitions/entities.ServicePayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Service"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/services/{id}": {
            "get": {
                "tags": ["services"],
                "summary": "Get a service",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Service ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Service"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["services"],
                "summary": "Replace a service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Service ID", "name": "id", "in": "path", "required": true},
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Service data",
                        "required": true,
                        "schema": {"$ref": "#/definitions/entities.ServicePayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Service"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["services"],
                "summary": "Delete a service",
                "description": "Succeeds whether or not the id exists",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Service ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/blogs": {
            "get": {
                "tags": ["blogs"],
                "summary": "List blog posts",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/entities.Blog"}
                        }
                    }
                }
            },
            "post": {
                "tags": ["blogs"],
                "summary": "Add a blog post",
                "description": "New posts are not starred unless the payload says so",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Blog data",
                        "required": true,
                        "schema": {"$ref": "#/definitions/entities.BlogPayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Blog"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/blogs/starred": {
            "get": {
                "tags": ["blogs"],
                "summary": "List starred blog posts",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/entities.Blog"}
                        }
                    }
                }
            }
        },
        "/blogs/{id}": {
            "get": {
                "tags": ["blogs"],
                "summary": "Get a blog post",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Blog ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Blog"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["blogs"],
                "summary": "Replace a blog post",
                "description": "The starred flag is kept when the payload omits it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Blog ID", "name": "id", "in": "path", "required": true},
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Blog data",
                        "required": true,
                        "schema": {"$ref": "#/definitions/entities.BlogPayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Blog"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["blogs"],
                "summary": "Delete a blog post",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Blog ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}/star": {
            "put": {
                "tags": ["blogs"],
                "summary": "Flip the starred flag of a blog post",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Blog ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.StarResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Start an admin session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Admin password",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "End the admin session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SuccessResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Report whether the caller is an admin",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Service": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "icon": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "entities.ServicePayload": {
            "type": "object",
            "properties": {
                "icon": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "entities.Blog": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "author": {"type": "string"},
                "date": {"type": "string"},
                "image": {"type": "string"},
                "starred": {"type": "boolean"}
            }
        },
        "entities.BlogPayload": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "author": {"type": "string"},
                "date": {"type": "string"},
                "image": {"type": "string"},
                "starred": {"type": "boolean"}
            }
        },
        "entities.StarResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "starred": {"type": "boolean"}
            }
        },
        "ports.LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string", "maxLength": 256}
            }
        },
        "http.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "expires_at": {"type": "integer"}
            }
        },
        "http.SessionResponse": {
            "type": "object",
            "properties": {
                "admin": {"type": "boolean"}
            }
        },
        "http.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "sitecms_session",
            "in": "cookie",
            "description": "Set by POST /auth/login"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "sitecms API",
	Description:      "Services and blog posts for the site, with a shared admin password.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
