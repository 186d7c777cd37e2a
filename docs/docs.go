// Package docs holds the OpenAPI document served under /swagger.
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
        "/generate-quiz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Generate a diagnostic quiz",
                "parameters": [
                    {"type": "string", "default": "Graphs", "description": "Topic name", "name": "topic", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/analyze-quiz": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Grade a diagnostic quiz",
                "parameters": [
                    {"description": "Answer sheet", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SubmitQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/final-quiz": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Generate a final assessment quiz",
                "parameters": [
                    {"description": "Topic and weak concepts", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.FinalQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/submit-final-quiz": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Grade the final quiz and compute improvement",
                "parameters": [
                    {"description": "Answer sheet", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SubmitQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/quiz-attempt/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Get a quiz attempt",
                "parameters": [
                    {"type": "integer", "description": "Attempt ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/learning-path": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Learning Path"],
                "summary": "Create a learning path",
                "parameters": [
                    {"description": "Attempt and optional weak concepts", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LearningPathRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/learning-path/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Learning Path"],
                "summary": "Get a learning path",
                "parameters": [
                    {"type": "integer", "description": "Learning path ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/learning-path/{id}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Learning Path"],
                "summary": "Mark a learning path completed",
                "parameters": [
                    {"type": "integer", "description": "Learning path ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "List progress for all topics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/progress/{topic}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "Get progress for a topic",
                "parameters": [
                    {"type": "string", "description": "Topic name", "name": "topic", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        }
    },
    "definitions": {
        "service.SubmitQuizRequest": {
            "type": "object",
            "required": ["quiz_id"],
            "properties": {
                "quiz_id": {"type": "integer"},
                "user_answers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.LearningPathRequest": {
            "type": "object",
            "required": ["quiz_attempt_id"],
            "properties": {
                "quiz_attempt_id": {"type": "integer"},
                "weak_concepts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.FinalQuizRequest": {
            "type": "object",
            "properties": {
                "topic": {"type": "string"},
                "weak_concepts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SALS Backend API",
	Description:      "Adaptive learning service: diagnostic quizzes, learning paths and final assessments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
