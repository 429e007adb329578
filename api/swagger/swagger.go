package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Horarios API",
        "description": "Academic timetable assignment engine",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalogo", "description": "Units, careers, cycles, periods and time blocks"},
        {"name": "Recursos", "description": "Teachers, subjects, classrooms and groups"},
        {"name": "Disponibilidad", "description": "Teacher availability management"},
        {"name": "Restricciones", "description": "Scheduling restriction catalog"},
        {"name": "Horarios", "description": "Manual assignments and timetable grids"},
        {"name": "Generacion", "description": "Automatic timetable generation"},
        {"name": "Exportacion", "description": "Spreadsheet and PDF exports"}
    ],
    "paths": {
        "/unidades-academicas": {
            "get": {
                "tags": ["Catalogo"],
                "summary": "List academic units",
                "parameters": [
                    {"name": "buscar", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Catalogo"],
                "summary": "Add an academic unit",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/carreras": {
            "get": {
                "tags": ["Catalogo"],
                "summary": "List careers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Catalogo"],
                "summary": "Add a career",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/carreras/{id}/ciclos": {
            "get": {
                "tags": ["Catalogo"],
                "summary": "List the cycles of a career",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/periodos-academicos": {
            "get": {
                "tags": ["Catalogo"],
                "summary": "List academic periods",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Catalogo"],
                "summary": "Add an academic period",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/bloques-horarios": {
            "get": {
                "tags": ["Catalogo"],
                "summary": "List time blocks",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Catalogo"],
                "summary": "Add a time block",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/docentes": {
            "get": {
                "tags": ["Recursos"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "buscar", "in": "query", "type": "string"},
                    {"name": "activa", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Recursos"],
                "summary": "Add a teacher",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/materias": {
            "get": {
                "tags": ["Recursos"],
                "summary": "List subjects",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Recursos"],
                "summary": "Add a subject",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/aulas": {
            "get": {
                "tags": ["Recursos"],
                "summary": "List classrooms",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Recursos"],
                "summary": "Add a classroom",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/grupos": {
            "get": {
                "tags": ["Recursos"],
                "summary": "List student groups",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Recursos"],
                "summary": "Add a student group",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/disponibilidad-docentes": {
            "get": {
                "tags": ["Disponibilidad"],
                "summary": "List availability slots",
                "parameters": [
                    {"name": "docente", "in": "query", "type": "string"},
                    {"name": "periodo", "in": "query", "type": "string"},
                    {"name": "dia", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Disponibilidad"],
                "summary": "Create or replace one availability slot",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/importar-disponibilidad-excel": {
            "post": {
                "tags": ["Disponibilidad"],
                "summary": "Bulk-import availability from a spreadsheet",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "teacher_id", "in": "formData", "type": "string", "required": true},
                    {"name": "period_id", "in": "formData", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "207": {"description": "Partial failure"}}
            }
        },
        "/configuracion-restricciones": {
            "get": {
                "tags": ["Restricciones"],
                "summary": "List restrictions",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Restricciones"],
                "summary": "Add a restriction",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/horarios-asignados": {
            "get": {
                "tags": ["Horarios"],
                "summary": "List schedule assignments",
                "parameters": [
                    {"name": "periodo", "in": "query", "type": "string"},
                    {"name": "grupo", "in": "query", "type": "string"},
                    {"name": "docente", "in": "query", "type": "string"},
                    {"name": "aula", "in": "query", "type": "string"},
                    {"name": "dia", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Horarios"],
                "summary": "Create a manual schedule assignment",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Policy violation"}
                }
            }
        },
        "/horarios-asignados/grid": {
            "get": {
                "tags": ["Horarios"],
                "summary": "Timetable grid for one view",
                "parameters": [
                    {"name": "period_id", "in": "query", "type": "string", "required": true},
                    {"name": "group_id", "in": "query", "type": "string"},
                    {"name": "teacher_id", "in": "query", "type": "string"},
                    {"name": "classroom_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/generar-horario-automatico": {
            "post": {
                "tags": ["Generacion"],
                "summary": "Run automatic timetable generation for a period",
                "responses": {
                    "200": {"description": "Generation report"},
                    "409": {"description": "Generation already running"}
                }
            }
        },
        "/exportar-horarios-excel": {
            "get": {
                "tags": ["Exportacion"],
                "summary": "Export timetables as an xlsx workbook",
                "responses": {
                    "200": {"description": "File"},
                    "202": {"description": "Deferred, retry shortly"}
                }
            }
        },
        "/exportar-horarios-pdf": {
            "get": {
                "tags": ["Exportacion"],
                "summary": "Export timetables as a PDF document",
                "responses": {
                    "200": {"description": "File"},
                    "202": {"description": "Deferred, retry shortly"}
                }
            }
        }
    },
    "definitions": {
        "Page": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "next": {"type": "string"},
                "previous": {"type": "string"},
                "results": {"type": "array", "items": {"type": "object"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "reason": {"type": "string"},
                "status": {"type": "integer"}
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
