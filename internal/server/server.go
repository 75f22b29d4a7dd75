package server

import (
	"net/http"

	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router         *gin.Engine
	authService    service.AuthService
	messageService service.MessageService
	log            *logrus.Logger
	logger         *zap.Logger
}

func NewServer(authService service.AuthService, messageService service.MessageService, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:         router,
		authService:    authService,
		messageService: messageService,
		log:            log,
		logger:         logger,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID())

	authHandler := handler.NewAuthHandler(s.authService, s.log)
	messageHandler := handler.NewMessageHandler(s.messageService, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Account routes, no auth required
	userGroup := s.router.Group("/users")
	userGroup.POST("/register", authHandler.Register)
	userGroup.POST("/login", authHandler.Login)

	// Message routes, bearer token required
	messageGroup := s.router.Group("/messages")
	messageGroup.Use(middleware.AuthMiddleware(s.authService, s.logger))
	{
		messageGroup.POST("/send", messageHandler.Send)
		messageGroup.GET("/all", messageHandler.GetAll)
		messageGroup.GET("/unseen", messageHandler.GetUnseen)
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
