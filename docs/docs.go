// Package docs registers the OpenAPI document of the API with swag so
// gin-swagger can serve it under /swagger.
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
        "/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Current and saved locations with the add-location menu",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/viewmodel.LocationOverview"}}
                }
            }
        },
        "/locations/select": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Make a saved location the current location",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            }
        },
        "/locations/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Current location state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LocationState"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Replace the current location",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            },
            "delete": {
                "tags": ["locations"],
                "summary": "Forget the current location",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/locations/current/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["locations"],
                "summary": "Stream the current location as server-sent events",
                "responses": {}
            }
        },
        "/locations/saved": {
            "get": {
                "produces": ["application/json"],
                "tags": ["saved"],
                "summary": "Saved locations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Location"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["saved"],
                "summary": "Save a location",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            }
        },
        "/locations/saved/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["saved"],
                "summary": "A saved location",
                "parameters": [{"type": "string", "description": "Saved location id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            },
            "delete": {
                "tags": ["saved"],
                "summary": "Delete a saved location",
                "parameters": [{"type": "string", "description": "Saved location id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["saved"],
                "summary": "Rename a saved location",
                "parameters": [{"type": "string", "description": "Saved location id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            }
        },
        "/search-sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Open an address search session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.searchSessionResponse"}}
                }
            }
        },
        "/search-sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Address search state",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.searchSessionResponse"}}
                }
            },
            "delete": {
                "tags": ["search"],
                "summary": "Close an address search session",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/search-sessions/{id}/text": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Change the search text",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.searchSessionResponse"}}
                }
            }
        },
        "/search-sessions/{id}/save": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Save a suggested place",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            }
        },
        "/search-sessions/{id}/results/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["search"],
                "summary": "Stream search results as server-sent events",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {}
            }
        },
        "/map-sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["map"],
                "summary": "Open a map session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.mapSessionResponse"}}
                }
            }
        },
        "/map-sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["map"],
                "summary": "Map state",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.mapSessionResponse"}}
                }
            },
            "delete": {
                "tags": ["map"],
                "summary": "Close a map session",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/map-sessions/{id}/input": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["map"],
                "summary": "Change the alias typed for the selected point",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.mapSessionResponse"}}
                }
            }
        },
        "/map-sessions/{id}/click": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["map"],
                "summary": "Select a point on the map",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.mapSessionResponse"}}
                }
            }
        },
        "/map-sessions/{id}/save": {
            "post": {
                "produces": ["application/json"],
                "tags": ["map"],
                "summary": "Save the selected point",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Location"}}
                }
            }
        }
    },
    "definitions": {
        "models.Coordinates": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "alias": {"type": "string"},
                "address": {"type": "string"},
                "place_id": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.LocationState": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["loading", "success", "no_content"]},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.CoordinatesState": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["loading", "success", "no_content"]},
                "coordinates": {"$ref": "#/definitions/models.Coordinates"}
            }
        },
        "models.Prediction": {
            "type": "object",
            "properties": {
                "place_id": {"type": "string"},
                "description": {"type": "string"},
                "primary_text": {"type": "string"},
                "secondary_text": {"type": "string"}
            }
        },
        "viewmodel.MenuAction": {
            "type": "object",
            "properties": {
                "route": {"type": "string"},
                "title": {"type": "string"},
                "href": {"type": "string"}
            }
        },
        "viewmodel.LocationOverview": {
            "type": "object",
            "properties": {
                "current": {"$ref": "#/definitions/models.LocationState"},
                "saved": {"type": "array", "items": {"$ref": "#/definitions/models.Location"}},
                "menu": {"type": "array", "items": {"$ref": "#/definitions/viewmodel.MenuAction"}}
            }
        },
        "viewmodel.Camera": {
            "type": "object",
            "properties": {
                "target": {"$ref": "#/definitions/models.Coordinates"},
                "zoom": {"type": "number"}
            }
        },
        "handler.searchSessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_token": {"type": "string"},
                "search_text": {"type": "string"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.Prediction"}}
            }
        },
        "handler.mapSessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "current": {"$ref": "#/definitions/models.CoordinatesState"},
                "camera": {"$ref": "#/definitions/viewmodel.Camera"},
                "selected": {"$ref": "#/definitions/models.Coordinates"},
                "user_input": {"type": "string"},
                "marker_title": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Weather Location API",
	Description:      "Current and saved locations, address search and map selection for the weather app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
