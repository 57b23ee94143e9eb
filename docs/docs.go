// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/chat": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "List chats",
                "parameters": [
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helper.ResponsePage"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/access": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Open or create a direct chat",
                "parameters": [
                    {"description": "Partner", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AccessChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/group": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Create a group chat",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/rename": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Rename a group or change its avatar",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/add": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Add a member to a group",
                "parameters": [
                    {"description": "Member", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GroupMemberRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/remove": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Remove a member from a group or leave it",
                "parameters": [
                    {"description": "Member", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GroupMemberRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/chat/{chatId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Delete a chat and its messages",
                "parameters": [
                    {"type": "string", "description": "Chat ID", "name": "chatId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatDeletedResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/message": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["message"],
                "summary": "Send a message",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/message/read": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["message"],
                "summary": "Mark a message or a whole chat as read",
                "parameters": [
                    {"description": "Target", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.MarkReadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helper.ResponseMessage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/message/chat/{chatId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["message"],
                "summary": "Delete every message of a chat",
                "parameters": [
                    {"type": "string", "description": "Chat ID", "name": "chatId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helper.ResponseMessage"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/message/{chatId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["message"],
                "summary": "List messages of a chat",
                "parameters": [
                    {"type": "string", "description": "Chat ID", "name": "chatId", "in": "path", "required": true},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "description": "Sort by creation time", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helper.ResponsePage"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/api/message/{messageId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["message"],
                "summary": "Delete a message",
                "parameters": [
                    {"type": "string", "description": "Message ID", "name": "messageId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helper.ResponseMessage"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/helper.ResponseError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.HealthResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "tags": ["websocket"],
                "summary": "WebSocket Connection",
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/helper.ResponseError"}}
                }
            }
        }
    },
    "definitions": {
        "controller.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "connections": {"type": "integer"}}
        },
        "helper.ResponseError": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "error": {"type": "string"}}
        },
        "helper.ResponseMessage": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "helper.ResponsePage": {
            "type": "object",
            "properties": {"page": {"type": "integer"}, "limit": {"type": "integer"}, "data": {}}
        },
        "model.AccessChatRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {"userId": {"type": "string"}}
        },
        "model.GroupMemberRequest": {
            "type": "object",
            "required": ["chatId", "userId"],
            "properties": {"chatId": {"type": "string"}, "userId": {"type": "string"}}
        },
        "model.MarkReadRequest": {
            "type": "object",
            "properties": {"chatId": {"type": "string"}, "messageId": {"type": "string"}}
        },
        "model.ChatDeletedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "chatId": {"type": "string"}}
        },
        "model.UserDTO": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "profile": {"type": "string"}}
        },
        "model.ChatResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "isGroup": {"type": "boolean"},
                "isGroupChat": {"type": "boolean"},
                "allUsers": {"type": "array", "items": {"type": "string"}},
                "admins": {"type": "array", "items": {"type": "string"}},
                "groupName": {"type": "string"},
                "groupAvatar": {"type": "string"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.UserDTO"}},
                "latestMessage": {"$ref": "#/definitions/model.MessageResponse"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.MessageResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "chat": {"type": "object"},
                "sender": {"$ref": "#/definitions/model.UserDTO"},
                "receiver": {"type": "string"},
                "content": {"type": "string"},
                "messageType": {"type": "string", "enum": ["text", "image", "video", "audio", "file"]},
                "mediaUrl": {"type": "string"},
                "mediaPublicId": {"type": "string"},
                "mediaFormat": {"type": "string"},
                "mediaSize": {"type": "integer"},
                "readBy": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DonaTalk API",
	Description:      "Real-time chat for donors and campaign owners.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
