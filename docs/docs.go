// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a USER account",
                "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "409": {"description": "Username taken"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "Token issued"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/tournaments": {
            "get": {
                "tags": ["tournaments"],
                "summary": "List tournaments, optionally those held on a date",
                "parameters": [{"in": "query", "name": "date", "type": "string", "format": "date"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["tournaments"],
                "summary": "Create a tournament (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/tournament"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "403": {"description": "Forbidden"}}
            }
        },
        "/tournaments/{tournamentID}": {
            "parameters": [{"in": "path", "name": "tournamentID", "required": true, "type": "integer"}],
            "get": {"tags": ["tournaments"], "summary": "Get a tournament", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {
                "tags": ["tournaments"],
                "summary": "Update a tournament (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/tournament"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {"tags": ["tournaments"], "summary": "Delete a tournament (ADMIN)", "responses": {"204": {"description": "Deleted"}}}
        },
        "/tournaments/{tournamentID}/events": {
            "parameters": [{"in": "path", "name": "tournamentID", "required": true, "type": "integer"}],
            "get": {"tags": ["events"], "summary": "List events of a tournament", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["events"],
                "summary": "Create an event (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/event"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Tournament not found"}}
            }
        },
        "/tournaments/{tournamentID}/events/{eventID}": {
            "parameters": [
                {"in": "path", "name": "tournamentID", "required": true, "type": "integer"},
                {"in": "path", "name": "eventID", "required": true, "type": "integer"}
            ],
            "get": {"tags": ["events"], "summary": "Get an event with rankings and knockout stages", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {
                "tags": ["events"],
                "summary": "Update an event (ADMIN)",
                "description": "The start date must fall on a UTC calendar day after the current UTC day.",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/event"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}, "404": {"description": "Not found"}}
            },
            "delete": {"tags": ["events"], "summary": "Delete an event (ADMIN)", "responses": {"204": {"description": "Deleted"}}}
        },
        "/tournaments/{tournamentID}/events/{eventID}/rankings": {
            "parameters": [
                {"in": "path", "name": "tournamentID", "required": true, "type": "integer"},
                {"in": "path", "name": "eventID", "required": true, "type": "integer"}
            ],
            "get": {"tags": ["events"], "summary": "Rankings ordered by score", "responses": {"200": {"description": "OK"}}}
        },
        "/tournaments/{tournamentID}/events/{eventID}/players/{playerID}": {
            "parameters": [
                {"in": "path", "name": "tournamentID", "required": true, "type": "integer"},
                {"in": "path", "name": "eventID", "required": true, "type": "integer"},
                {"in": "path", "name": "playerID", "required": true, "type": "integer"}
            ],
            "post": {"tags": ["events"], "summary": "Enter a player into an event (ADMIN)", "responses": {"201": {"description": "Created"}, "409": {"description": "Already entered"}}},
            "put": {
                "tags": ["events"],
                "summary": "Set a player's score (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/score"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not entered"}}
            },
            "delete": {"tags": ["events"], "summary": "Withdraw a player (ADMIN)", "responses": {"204": {"description": "Deleted"}}}
        },
        "/tournaments/{tournamentID}/events/{eventID}/knockoutStage": {
            "parameters": [
                {"in": "path", "name": "tournamentID", "required": true, "type": "integer"},
                {"in": "path", "name": "eventID", "required": true, "type": "integer"}
            ],
            "get": {"tags": ["knockout stages"], "summary": "List knockout stages", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["knockout stages"], "summary": "Create a knockout stage (ADMIN)", "responses": {"201": {"description": "Created"}}}
        },
        "/tournaments/{tournamentID}/events/{eventID}/knockoutStage/{stageID}": {
            "parameters": [
                {"in": "path", "name": "tournamentID", "required": true, "type": "integer"},
                {"in": "path", "name": "eventID", "required": true, "type": "integer"},
                {"in": "path", "name": "stageID", "required": true, "type": "integer"}
            ],
            "get": {"tags": ["knockout stages"], "summary": "Get a knockout stage", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["knockout stages"], "summary": "Update a knockout stage (ADMIN)", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["knockout stages"], "summary": "Delete a knockout stage (ADMIN)", "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/players": {
            "get": {"tags": ["players"], "summary": "List players", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["players"],
                "summary": "Create a player (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/player"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Username taken"}}
            }
        },
        "/players/by-username/{username}": {
            "get": {
                "tags": ["players"],
                "summary": "Find a player by username",
                "parameters": [{"in": "path", "name": "username", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/players/{playerID}": {
            "parameters": [{"in": "path", "name": "playerID", "required": true, "type": "integer"}],
            "get": {"tags": ["players"], "summary": "Get a player", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {
                "tags": ["players"],
                "summary": "Replace a player (ADMIN)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/player"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {"tags": ["players"], "summary": "Delete a player (ADMIN)", "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/players/{playerID}/photo": {
            "post": {
                "tags": ["players"],
                "summary": "Upload a player photo (ADMIN)",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "path", "name": "playerID", "required": true, "type": "integer"},
                    {"in": "formData", "name": "photo", "required": true, "type": "file"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Storage not configured"}}
            }
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "List accounts (ADMIN)", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userID}/role": {
            "patch": {
                "tags": ["users"],
                "summary": "Change an account's role (ADMIN)",
                "parameters": [
                    {"in": "path", "name": "userID", "required": true, "type": "integer"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/role"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}}
        },
        "tournament": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "registration_start_date": {"type": "string", "format": "date"},
                "registration_end_date": {"type": "string", "format": "date"},
                "tournament_start_date": {"type": "string", "format": "date"},
                "tournament_end_date": {"type": "string", "format": "date"},
                "venue": {"type": "string"}
            }
        },
        "event": {
            "type": "object",
            "properties": {
                "tournament_id": {"type": "integer"},
                "gender": {"type": "string", "enum": ["MALE", "FEMALE", "MIXED"]},
                "weapon": {"type": "string", "enum": ["FOIL", "EPEE", "SABRE"]},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "knockout_stages": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer"}}}}
            }
        },
        "player": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}}
        },
        "score": {
            "type": "object",
            "properties": {"score": {"type": "integer", "minimum": 0}}
        },
        "role": {
            "type": "object",
            "properties": {"role": {"type": "string", "enum": ["ADMIN", "USER"]}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fencing Tournament API",
	Description:      "Tournaments, events, knockout stages, players and rankings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
