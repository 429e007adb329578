package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/acadhub/horarios-api/internal/middleware"
	"github.com/acadhub/horarios-api/internal/service"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Catalog      *CatalogHandler
	Roster       *RosterHandler
	Availability *AvailabilityHandler
	Restriction  *RestrictionHandler
	Assignment   *AssignmentHandler
	Generator    *GeneratorHandler
	Export       *ExportHandler
}

// RegisterRoutes mounts every API endpoint under the given prefix. The JWT
// gate covers the whole group; metrics live outside it.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, jwtSecret string, metrics *service.MetricsService) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(prefix)
	api.Use(middleware.JWT(jwtSecret))

	api.GET("/unidades-academicas", h.Catalog.ListUnits)
	api.POST("/unidades-academicas", h.Catalog.CreateUnit)
	api.DELETE("/unidades-academicas/:id", h.Catalog.DeleteUnit)

	api.GET("/carreras", h.Catalog.ListCareers)
	api.POST("/carreras", h.Catalog.CreateCareer)
	api.DELETE("/carreras/:id", h.Catalog.DeleteCareer)
	api.GET("/carreras/:id/ciclos", h.Catalog.ListCycles)
	api.POST("/ciclos", h.Catalog.CreateCycle)
	api.DELETE("/ciclos/:id", h.Catalog.DeleteCycle)

	api.GET("/periodos-academicos", h.Catalog.ListPeriods)
	api.POST("/periodos-academicos", h.Catalog.CreatePeriod)
	api.DELETE("/periodos-academicos/:id", h.Catalog.DeletePeriod)

	api.GET("/bloques-horarios", h.Catalog.ListTimeBlocks)
	api.POST("/bloques-horarios", h.Catalog.CreateTimeBlock)
	api.DELETE("/bloques-horarios/:id", h.Catalog.DeleteTimeBlock)

	api.GET("/docentes", h.Roster.ListTeachers)
	api.POST("/docentes", h.Roster.CreateTeacher)
	api.GET("/docentes/:id", h.Roster.GetTeacher)
	api.DELETE("/docentes/:id", h.Roster.DeactivateTeacher)

	api.GET("/materias", h.Roster.ListSubjects)
	api.POST("/materias", h.Roster.CreateSubject)
	api.DELETE("/materias/:id", h.Roster.DeleteSubject)

	api.GET("/aulas", h.Roster.ListClassrooms)
	api.POST("/aulas", h.Roster.CreateClassroom)
	api.DELETE("/aulas/:id", h.Roster.DeleteClassroom)

	api.GET("/grupos", h.Roster.ListGroups)
	api.POST("/grupos", h.Roster.CreateGroup)
	api.DELETE("/grupos/:id", h.Roster.DeleteGroup)

	api.GET("/disponibilidad-docentes", h.Availability.List)
	api.POST("/disponibilidad-docentes", h.Availability.Upsert)
	api.PATCH("/disponibilidad-docentes/:id", h.Availability.Patch)
	api.POST("/importar-disponibilidad-excel", h.Availability.Import)

	api.GET("/configuracion-restricciones", h.Restriction.List)
	api.POST("/configuracion-restricciones", h.Restriction.Create)
	api.GET("/configuracion-restricciones/:id", h.Restriction.Get)
	api.PATCH("/configuracion-restricciones/:id", h.Restriction.Update)
	api.DELETE("/configuracion-restricciones/:id", h.Restriction.Delete)

	api.POST("/horarios-asignados", h.Assignment.Create)
	api.GET("/horarios-asignados", h.Assignment.List)
	api.GET("/horarios-asignados/grid", h.Assignment.Grid)
	api.DELETE("/horarios-asignados/:id", h.Assignment.Delete)

	api.POST("/generar-horario-automatico", h.Generator.Generate)

	api.GET("/exportar-horarios-excel", h.Export.Excel)
	api.GET("/exportar-horarios-pdf", h.Export.PDF)
}
