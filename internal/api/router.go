package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "etl-tycoon/docs"
	"etl-tycoon/internal/api/handler"
	"etl-tycoon/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/sessions", handler.CreateSession)
	r.GET("/api/v1/sessions", handler.ListSessions)
	// More specific routes first
	r.POST("/api/v1/sessions/*/blocks", handler.AddBlock)
	r.PATCH("/api/v1/sessions/*/blocks/*", handler.UpdateBlock)
	r.DELETE("/api/v1/sessions/*/blocks/*", handler.RemoveBlock)
	r.POST("/api/v1/sessions/*/connections", handler.AddConnection)
	r.DELETE("/api/v1/sessions/*/connections/*", handler.RemoveConnection)
	r.POST("/api/v1/sessions/*/analyze", handler.AnalyzeSession)
	r.GET("/api/v1/sessions/*/report", handler.GetReport)
	r.POST("/api/v1/sessions/*/levels/*", handler.CheckLevel)
	// Generic session routes last
	r.GET("/api/v1/sessions/*", handler.GetSession)
	r.DELETE("/api/v1/sessions/*", handler.DeleteSession)

	r.POST("/api/v1/analyze", handler.AnalyzePipeline)
	r.GET("/api/v1/levels", handler.ListLevels)

	// Swagger UI
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
