package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Semester Planner API",
        "description": "Constraint-solving schedule composer for semester course registration",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and identity"},
        {"name": "Planner", "description": "Schedule composition, settings and export"},
        {"name": "Prerequisites", "description": "Prerequisite-graph eligibility"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check with metrics snapshot",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user claims",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/compose": {
            "post": {
                "tags": ["Planner"],
                "summary": "Compose schedules",
                "description": "Build every internally consistent schedule option for the selected courses and personal blocks. Instructor preferences relax in tiers when the strict pass finds nothing.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ComposeScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/check": {
            "post": {
                "tags": ["Planner"],
                "summary": "Check section registrability",
                "description": "Report whether a concrete set of sections can all be attended together, ignoring taste filters.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckSectionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown section", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Export a schedule option",
                "description": "Render one composed schedule option as CSV or PDF.",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "Unknown option", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Export disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/export/jobs": {
            "post": {
                "tags": ["Export"],
                "summary": "Queue a schedule export",
                "description": "Persist an export job and render it in the background.",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportScheduleRequest"}}
                ],
                "responses": {
                    "202": {"description": "Job accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/export/jobs/{id}": {
            "get": {
                "tags": ["Export"],
                "summary": "Poll an export job",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/export/download": {
            "get": {
                "tags": ["Export"],
                "summary": "Download a finished export",
                "description": "Streams the rendered file referenced by a signed token.",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Export not available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/settings": {
            "get": {
                "tags": ["Planner"],
                "summary": "Get planner settings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Planner"],
                "summary": "Replace planner settings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlannerSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/preferences": {
            "get": {
                "tags": ["Planner"],
                "summary": "List favorite instructors",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Planner"],
                "summary": "Replace favorite instructors",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplacePreferencesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/prerequisites/blocked": {
            "post": {
                "tags": ["Prerequisites"],
                "summary": "List blocked courses",
                "description": "Split candidate courses into blocked and eligible given the completed set, reporting the full unmet prerequisite chain.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlockedCoursesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "PersonalBlockRequest": {
            "type": "object",
            "required": ["name", "day", "start", "end"],
            "properties": {
                "name": {"type": "string"},
                "day": {"type": "integer", "minimum": 1, "maximum": 7},
                "start": {"type": "string", "example": "09:00"},
                "end": {"type": "string", "example": "11:00"}
            }
        },
        "FilterOverrides": {
            "type": "object",
            "properties": {
                "allowedDays": {"type": "array", "items": {"type": "integer"}},
                "requireFreeCapacity": {"type": "boolean"},
                "requireSameActualSection": {"type": "boolean"},
                "excludeAdministrative": {"type": "boolean"},
                "enrollmentEligibleOnly": {"type": "boolean"},
                "degree": {"type": "string"}
            }
        },
        "ComposeScheduleRequest": {
            "type": "object",
            "required": ["courseNumbers"],
            "properties": {
                "courseNumbers": {"type": "array", "items": {"type": "string"}},
                "personalBlocks": {"type": "array", "items": {"$ref": "#/definitions/PersonalBlockRequest"}},
                "overrides": {"$ref": "#/definitions/FilterOverrides"}
            }
        },
        "CheckSectionsRequest": {
            "type": "object",
            "required": ["sectionIds"],
            "properties": {
                "sectionIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "ExportScheduleRequest": {
            "type": "object",
            "required": ["courseNumbers", "option", "format"],
            "properties": {
                "courseNumbers": {"type": "array", "items": {"type": "string"}},
                "personalBlocks": {"type": "array", "items": {"$ref": "#/definitions/PersonalBlockRequest"}},
                "overrides": {"$ref": "#/definitions/FilterOverrides"},
                "option": {"type": "string", "example": "option_1"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "PlannerSettingsRequest": {
            "type": "object",
            "properties": {
                "allowedDays": {"type": "array", "items": {"type": "integer"}},
                "requireFreeCapacity": {"type": "boolean"},
                "requireSameActualSection": {"type": "boolean"},
                "excludeAdministrative": {"type": "boolean"},
                "enrollmentEligibleOnly": {"type": "boolean"},
                "degree": {"type": "string"}
            }
        },
        "ReplacePreferencesRequest": {
            "type": "object",
            "properties": {
                "preferences": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["courseNumber", "role", "instructor"],
                        "properties": {
                            "courseNumber": {"type": "string"},
                            "role": {"type": "string", "enum": ["lecture", "exercise"]},
                            "instructor": {"type": "string"}
                        }
                    }
                }
            }
        },
        "BlockedCoursesRequest": {
            "type": "object",
            "required": ["candidateCourses"],
            "properties": {
                "completedCourses": {"type": "array", "items": {"type": "string"}},
                "candidateCourses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
