// Package docs holds the Swagger 2.0 description of the NoteWall API.
// It mirrors the godoc annotations on the handlers in internal/handler.
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
        "/notes": {
            "get": {
                "description": "Get one page of notes. A bearer token is optional and fills likedByMe.",
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List notes on the wall",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (max 50)", "name": "limit", "in": "query"},
                    {"enum": ["recent", "popular", "trending"], "type": "string", "default": "recent", "description": "Sort order", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.NoteListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Pin a new note to the wall",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note",
                "parameters": [
                    {"description": "Note to create", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.NoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/notes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Get a note",
                "parameters": [
                    {"type": "string", "description": "Note ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.NoteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete a note with its comments, likes, views and reports (author only)",
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [
                    {"type": "string", "description": "Note ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Edit any subset of a note's fields (author only)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"type": "string", "description": "Note ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.NoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/notes/{id}/comments": {
            "get": {
                "description": "Oldest first. A bearer token is optional and fills likedByMe.",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List a note's comments",
                "parameters": [
                    {"type": "string", "description": "Note ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (max 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a note",
                "parameters": [
                    {"type": "string", "description": "Note ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Comment to create", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CommentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/comments/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Allowed for the comment author and the note author",
                "tags": ["comments"],
                "summary": "Delete a comment",
                "parameters": [
                    {"type": "string", "description": "Comment ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/likes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interactions"],
                "summary": "Like or unlike a note or comment",
                "parameters": [
                    {"description": "Like target", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ToggleLikeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LikeResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/views": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "A first view answers 201, a repeat 200",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interactions"],
                "summary": "Record a note view",
                "parameters": [
                    {"description": "Viewed note", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TrackViewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TrackViewResult"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.TrackViewResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/reports": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interactions"],
                "summary": "Report a note or comment",
                "parameters": [
                    {"description": "Report", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ReportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get privacy settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SettingsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update privacy settings",
                "parameters": [
                    {"description": "Toggles to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SettingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "domain.LikeResult": {
            "type": "object",
            "properties": {
                "likeCount": {"type": "integer"},
                "liked": {"type": "boolean"},
                "targetId": {"type": "string"},
                "targetType": {"type": "string", "enum": ["note", "comment"]}
            }
        },
        "dto.CreateCommentRequest": {
            "type": "object",
            "required": ["backgroundColor", "content", "noteStyle", "selectedFont", "tilt"],
            "properties": {
                "backgroundColor": {"type": "string", "example": "#FFEE88"},
                "content": {"type": "string", "maxLength": 300, "minLength": 1},
                "noteStyle": {"type": "string"},
                "selectedFont": {"type": "string"},
                "tilt": {"type": "number", "maximum": 4, "minimum": -4}
            }
        },
        "dto.CreateNoteRequest": {
            "type": "object",
            "required": ["backgroundColor", "clipType", "content", "noteStyle", "selectedFont", "tilt"],
            "properties": {
                "backgroundColor": {"type": "string", "example": "#FFEE88"},
                "clipType": {"type": "string"},
                "content": {"type": "string", "maxLength": 500, "minLength": 1},
                "noteStyle": {"type": "string"},
                "selectedFont": {"type": "string"},
                "tilt": {"type": "number", "maximum": 4, "minimum": -4}
            }
        },
        "dto.ReportRequest": {
            "type": "object",
            "required": ["targetId", "targetType"],
            "properties": {
                "reason": {"type": "string", "maxLength": 200},
                "targetId": {"type": "string"},
                "targetType": {"type": "string", "enum": ["note", "comment"]}
            }
        },
        "dto.ToggleLikeRequest": {
            "type": "object",
            "required": ["targetId", "targetType"],
            "properties": {
                "targetId": {"type": "string"},
                "targetType": {"type": "string", "enum": ["note", "comment"]}
            }
        },
        "dto.TrackViewRequest": {
            "type": "object",
            "required": ["noteId"],
            "properties": {
                "noteId": {"type": "string"}
            }
        },
        "dto.UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "backgroundColor": {"type": "string"},
                "clipType": {"type": "string"},
                "content": {"type": "string", "maxLength": 500, "minLength": 1},
                "noteStyle": {"type": "string"},
                "selectedFont": {"type": "string"},
                "tilt": {"type": "number", "maximum": 4, "minimum": -4}
            }
        },
        "dto.UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "allowComments": {"type": "boolean"},
                "anonymous": {"type": "boolean"}
            }
        },
        "handler.CommentListResponse": {
            "type": "object",
            "properties": {
                "hasMore": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.CommentResponse"}},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.CommentResponse": {
            "type": "object",
            "properties": {
                "authorId": {"type": "string"},
                "backgroundColor": {"type": "string"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "likeCount": {"type": "integer"},
                "likedByMe": {"type": "boolean"},
                "noteId": {"type": "string"},
                "noteStyle": {"type": "string"},
                "selectedFont": {"type": "string"},
                "tilt": {"type": "number"}
            }
        },
        "handler.NoteListResponse": {
            "type": "object",
            "properties": {
                "hasMore": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.NoteResponse"}},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.NoteResponse": {
            "type": "object",
            "properties": {
                "authorId": {"type": "string"},
                "backgroundColor": {"type": "string"},
                "clipType": {"type": "string"},
                "commentCount": {"type": "integer"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "likeCount": {"type": "integer"},
                "likedByMe": {"type": "boolean"},
                "noteStyle": {"type": "string"},
                "selectedFont": {"type": "string"},
                "tilt": {"type": "number"},
                "updatedAt": {"type": "string"},
                "viewCount": {"type": "integer"}
            }
        },
        "handler.ProblemDetails": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.ValidationError"}},
                "instance": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handler.ReportResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "reason": {"type": "string"},
                "targetId": {"type": "string"},
                "targetType": {"type": "string"}
            }
        },
        "handler.SettingsResponse": {
            "type": "object",
            "properties": {
                "allowComments": {"type": "boolean"},
                "anonymous": {"type": "boolean"}
            }
        },
        "handler.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "service.TrackViewResult": {
            "type": "object",
            "properties": {
                "noteId": {"type": "string"},
                "recorded": {"type": "boolean"},
                "viewCount": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Auth0 access token as \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "NoteWall API",
	Description:      "Public sticky-note wall with comments, likes, views and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
