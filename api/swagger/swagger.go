package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GyoCal Import API",
        "description": "Extracts school annual event schedules from scanned documents and commits them to Google Calendar",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Document extraction and review export"},
        {"name": "Calendar", "description": "Event commit and upcoming reads"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedule/parse": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Extract event records from a schedule document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParseScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing extraction API key"},
                    "422": {"description": "Extraction output was not a valid event list"},
                    "502": {"description": "Extraction backend failure"}
                }
            }
        },
        "/api/v1/schedule/export": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Render a reviewed event list as PDF or CSV",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Binary document"}
                }
            }
        },
        "/api/v1/calendar/events/import": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Commit a reviewed event batch to a calendar",
                "parameters": [
                    {"name": "Authorization", "in": "header", "type": "string", "description": "Bearer Google OAuth access token, required for mode=live"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportEventsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Live mode without a usable credential"}
                }
            }
        },
        "/api/v1/calendar/events/upcoming": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List events inside the upcoming window",
                "parameters": [
                    {"name": "Authorization", "in": "header", "type": "string"},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["live", "mock"]},
                    {"name": "calendarId", "in": "query", "type": "string"},
                    {"name": "days", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EventRecord": {
            "type": "object",
            "required": ["date", "summary"],
            "properties": {
                "date": {"type": "string", "example": "2026-04-10"},
                "summary": {"type": "string", "example": "入学式"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "12:00"}
            }
        },
        "ParseScheduleRequest": {
            "type": "object",
            "required": ["fileData", "mimeType"],
            "properties": {
                "fileData": {"type": "string", "description": "Base64 encoded document"},
                "mimeType": {"type": "string", "example": "application/pdf"},
                "apiKey": {"type": "string"}
            }
        },
        "ExportScheduleRequest": {
            "type": "object",
            "required": ["events"],
            "properties": {
                "title": {"type": "string"},
                "format": {"type": "string", "enum": ["pdf", "csv"]},
                "events": {"type": "array", "items": {"$ref": "#/definitions/EventRecord"}}
            }
        },
        "ImportEventsRequest": {
            "type": "object",
            "required": ["mode", "events"],
            "properties": {
                "calendarId": {"type": "string"},
                "mode": {"type": "string", "enum": ["live", "mock"]},
                "events": {"type": "array", "items": {"$ref": "#/definitions/EventRecord"}}
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
