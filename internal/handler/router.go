package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"rx-exchange/internal/handler/api"
	reqdto "rx-exchange/internal/handler/dto/request"
	"rx-exchange/internal/handler/middleware"
	"rx-exchange/internal/pkg/config"
)

const importBodyLimit = 4 << 20

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Listing      *api.ListingHandler
	Match        *api.MatchHandler
	Exchange     *api.ExchangeHandler
	Conversation *api.ConversationHandler
	Auth         *middleware.AuthMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(h.Auth.RequireAuth())
	{
		addRoutes(apiGroup.Group("/listings"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Listing.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Listing.List},
			{Method: http.MethodPost, Path: "/import", Handler: h.Listing.Import, Mw: []gin.HandlerFunc{middleware.MaxBodySize(importBodyLimit)}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Listing.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Listing.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Listing.Delete},
		})

		addRoutes(apiGroup.Group("/matches"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Match.Match},
		})

		addRoutes(apiGroup.Group("/exchanges"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Exchange.Propose},
			{Method: http.MethodGet, Path: "", Handler: h.Exchange.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Exchange.Get},
			{Method: http.MethodGet, Path: "/:id/history", Handler: h.Exchange.History},
			{Method: http.MethodPost, Path: "/:id/respond", Handler: h.Exchange.Respond},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Exchange.Complete},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Exchange.Cancel},
		})

		addRoutes(apiGroup.Group("/conversations"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Conversation.List},
			{Method: http.MethodGet, Path: "/:id/messages", Handler: h.Conversation.Messages},
			{Method: http.MethodPost, Path: "/:id/messages", Handler: h.Conversation.Send},
			{Method: http.MethodPost, Path: "/:id/read", Handler: h.Conversation.MarkRead},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
