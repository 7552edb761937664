package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Care Record API",
        "description": "Daily vital-sign records and record form sessions for care facilities",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Vocabulary", "description": "Option tables of categorical fields"},
        {"name": "Patients", "description": "Patient directory"},
        {"name": "Records", "description": "Daily record store"},
        {"name": "FormSessions", "description": "Record form sessions"}
    ],
    "paths": {
        "/vocabulary": {
            "get": {
                "tags": ["Vocabulary"],
                "summary": "List categorical fields and their options",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/patients": {
            "get": {
                "tags": ["Patients"],
                "summary": "List patients",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/patients/options": {
            "get": {
                "tags": ["Patients"],
                "summary": "Search patient options",
                "parameters": [{"name": "q", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/patients/{id}": {
            "get": {
                "tags": ["Patients"],
                "summary": "Get a patient",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/patients/{id}/records": {
            "get": {
                "tags": ["Records"],
                "summary": "List a patient's daily records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/patients/{id}/records/options": {
            "get": {
                "tags": ["Records"],
                "summary": "Search a patient's record options, create-new first",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/patients/{id}/records/export": {
            "get": {
                "tags": ["Records"],
                "summary": "Export a patient's daily records as CSV",
                "produces": ["text/csv"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "CSV file"}}
            }
        },
        "/records": {
            "post": {
                "tags": ["Records"],
                "summary": "Add a daily record",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordSubmission"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/records/{id}": {
            "get": {
                "tags": ["Records"],
                "summary": "Get a daily record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Records"],
                "summary": "Update a daily record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordSubmission"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions": {
            "post": {
                "tags": ["FormSessions"],
                "summary": "Open a record form session",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions/{id}": {
            "get": {
                "tags": ["FormSessions"],
                "summary": "Get a form session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["FormSessions"],
                "summary": "Close a form session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Closed"}}
            }
        },
        "/form-sessions/{id}/patient": {
            "put": {
                "tags": ["FormSessions"],
                "summary": "Select the session's patient",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"patientId": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions/{id}/record": {
            "put": {
                "tags": ["FormSessions"],
                "summary": "Select the session's record (id, create-new, or empty)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"recordId": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions/{id}/fields": {
            "patch": {
                "tags": ["FormSessions"],
                "summary": "Set one form field",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}, "value": {}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions/{id}/submit": {
            "post": {
                "tags": ["FormSessions"],
                "summary": "Submit the session's form",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/form-sessions/{id}/patient-options": {
            "get": {
                "tags": ["FormSessions"],
                "summary": "Search patient options",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/form-sessions/{id}/record-options": {
            "get": {
                "tags": ["FormSessions"],
                "summary": "Search record options of the selected patient",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "RecordForm": {
            "type": "object",
            "properties": {
                "BT": {"type": "string"},
                "BP": {"type": "string"},
                "HR": {"type": "string"},
                "RR": {"type": "string"},
                "O2sat": {"type": "string"},
                "conscious": {"type": "string"},
                "breath_pattern": {"type": "string"},
                "eat_method": {"type": "string"},
                "food_type": {"type": "string"},
                "food_intake": {"type": "array", "items": {"type": "string"}},
                "sleep": {"type": "string"},
                "excretion": {"type": "string"},
                "extra_symptoms": {"type": "string"},
                "extra_food": {"type": "string"},
                "notes": {"type": "string"},
                "shift": {"type": "string", "enum": ["", "morning-shift", "afternoon-shift", "night-shift"]}
            }
        },
        "RecordSubmission": {
            "type": "object",
            "required": ["patientId"],
            "properties": {
                "patientId": {"type": "string"},
                "record": {"$ref": "#/definitions/RecordForm"}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
