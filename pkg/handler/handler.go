package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jumpa_withdrawal_back/pkg/middleware"
	"jumpa_withdrawal_back/pkg/service"
)

type Options struct {
	AllowOrigins []string
	// HMACSecret enables request signing on /api when set.
	HMACSecret string
	Metrics    http.Handler
}

type Handler struct {
	service *service.Service
	opts    Options
}

func NewHandler(service *service.Service, opts Options) *Handler {
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}
	return &Handler{
		service: service,
		opts:    opts,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins: h.opts.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type",
			middleware.HeaderTelegramID, middleware.HeaderSignature, middleware.HeaderTimestamp,
		},
		ExposeHeaders: []string{"Content-Length"},
	}))

	router.GET("/health", h.Health)
	if h.opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.opts.Metrics))
	}

	signature := &middleware.Signature{Secret: h.opts.HMACSecret}
	api := router.Group("/api", signature.Middleware(), middleware.AuthMiddleware())
	{
		withdrawal := api.Group("/withdrawal")
		{
			withdrawal.POST("/message", h.Message)
			withdrawal.POST("/chain", h.SelectChain)
			withdrawal.POST("/currency", h.SelectCurrency)
			withdrawal.POST("/cancel", h.Cancel)
			withdrawal.GET("/session", h.GetSession)
		}

		account := api.Group("/account")
		{
			account.POST("", h.Provision)
			account.POST("/pin", h.SetPIN)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/reconcile", h.Reconcile)
		}
	}
	return router
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
