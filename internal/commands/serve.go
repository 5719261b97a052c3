package commands

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taxsync/internal/handler"
	"taxsync/internal/middleware"
	"taxsync/internal/websocket"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := a.router(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("server listening", zap.String("port", a.cfg.Port))
			return router.Run(":" + a.cfg.Port)
		},
	}
}

func (a *app) router(ctx context.Context) (*gin.Engine, error) {
	gin.SetMode(a.cfg.GinMode)
	secret := a.cfg.Secret()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(a.logger)
	go wsHub.Run()

	svcs, err := a.services(wsHub)
	if err != nil {
		return nil, err
	}
	country, err := a.country(ctx, "")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(a.logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.cfg.Origins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	auth := func(roles ...string) gin.HandlerFunc {
		return middleware.RequireRole(secret, roles...)
	}
	api := router.Group("")
	handler.NewTaxClassHandler(svcs.reconcile, svcs.resolver, country).RegisterRoutes(api, auth)
	handler.NewTaxRateHandler(svcs.rates).RegisterRoutes(api, auth)
	handler.NewAuditHandler(svcs.audit).RegisterRoutes(api, auth)

	return router, nil
}
