package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/SAP-F-2025/comprehension-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler     *SessionHandler
	participantHandler *ParticipantHandler
	dataHandler        *DataHandler
	authenticator      Authenticator
}

func NewHandlerManager(
	sessionService services.SessionService,
	participantService services.ParticipantService,
	exportService services.ExportService,
	authenticator Authenticator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler:     NewSessionHandler(sessionService, logger),
		participantHandler: NewParticipantHandler(participantService, logger),
		dataHandler:        NewDataHandler(exportService, participantService, logger),
		authenticator:      authenticator,
	}
}

// NewRouter builds the gin engine with request logging and all routes.
// Cross-origin requests are only allowed from allowedOrigins.
func NewRouter(hm *HandlerManager, logger utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type", utils.RequestIDHeader},
			ExposeHeaders: []string{"Content-Disposition", utils.RequestIDHeader},
		}))
	}

	hm.SetupRoutes(router)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "comprehension-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitTrial)
			sessions.GET("/:id/progress", hm.sessionHandler.GetProgress)
		}

		participants := v1.Group("/participants")
		{
			participants.POST("/:id/device", hm.participantHandler.UpdateDevice)
			participants.POST("/:id/demographics", hm.participantHandler.RecordDemographics)
			participants.POST("/:id/debrief", hm.participantHandler.RecordDebrief)
		}

		data := v1.Group("/data", AdminMiddleware(hm.authenticator))
		{
			data.GET("/:model", hm.dataHandler.Download)
		}

		admin := v1.Group("/admin", AdminMiddleware(hm.authenticator))
		{
			admin.GET("/participants/:id", hm.dataHandler.GetParticipant)
			admin.GET("/stats", hm.dataHandler.GetCriticalStats)
		}
	}
}
