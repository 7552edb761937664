package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/care-record-api/api/swagger"
	"github.com/noah-isme/care-record-api/internal/handler"
	internalmiddleware "github.com/noah-isme/care-record-api/internal/middleware"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/service"
	"github.com/noah-isme/care-record-api/pkg/config"
	"github.com/noah-isme/care-record-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/care-record-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/care-record-api/pkg/middleware/requestid"
)

type handlers struct {
	metrics     *handler.MetricsHandler
	vocabulary  *handler.VocabularyHandler
	patients    *handler.PatientHandler
	records     *handler.RecordHandler
	formSession *handler.FormSessionHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, tokens internalmiddleware.TokenValidator, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(tokens))

	api.GET("/vocabulary", h.vocabulary.List)

	patients := api.Group("/patients")
	patients.GET("", h.patients.List)
	patients.GET("/options", h.patients.Options)
	patients.GET("/:id", h.patients.Get)
	patients.GET("/:id/records", h.records.ListForPatient)
	patients.GET("/:id/records/options", h.records.Options)
	patients.GET("/:id/records/export", internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleNurse), h.records.Export)

	records := api.Group("/records")
	records.POST("", h.records.Create)
	records.GET("/:id", h.records.Get)
	records.PUT("/:id", h.records.Update)

	sessions := api.Group("/form-sessions")
	sessions.POST("", h.formSession.Open)
	sessions.GET("/:id", h.formSession.Get)
	sessions.DELETE("/:id", h.formSession.Close)
	sessions.PUT("/:id/patient", h.formSession.SelectPatient)
	sessions.PUT("/:id/record", h.formSession.SelectRecord)
	sessions.PATCH("/:id/fields", h.formSession.EditField)
	sessions.POST("/:id/submit", h.formSession.Submit)
	sessions.GET("/:id/patient-options", h.formSession.PatientOptions)
	sessions.GET("/:id/record-options", h.formSession.RecordOptions)

	return r
}
