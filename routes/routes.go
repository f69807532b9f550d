package routes

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ollamadash/config"
	"ollamadash/controllers"
	"ollamadash/middlewares"
	"ollamadash/services"
	"ollamadash/templates"
)

func SetupRouter(cfg config.Config, client services.InferenceClient, chat *services.ConversationService) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.Logger())

	if len(cfg.CORSAllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		if slices.Contains(cfg.CORSAllowOrigins, "*") {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.CORSAllowOrigins
		}
		if err := corsConfig.Validate(); err != nil {
			return nil, fmt.Errorf("CORS_ALLOW_ORIGINS: %w", err)
		}
		r.Use(cors.New(corsConfig))
	}

	tmpl, err := templates.Load(cfg.AppName)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := controllers.NewHandler(client, chat)
	probe := middlewares.Probe(client, cfg.GatePolicy)

	r.GET("/healthz", h.Healthz)

	pages := r.Group("/", middlewares.Sessions(cfg.SessionSecret), middlewares.SessionID())

	// ダッシュボード
	pages.GET("/", probe, h.Dashboard)

	// チャット
	pages.GET("/chat/:model", probe, h.ShowChat)
	pages.POST("/chat/:model", probe, h.HandleChat)

	// モデル管理
	pages.GET("/pull", h.ShowPull)
	pages.POST("/pull", h.HandlePull)
	pages.GET("/delete/:model", h.HandleDelete)

	// 単発生成
	pages.GET("/generate/:model", probe, h.ShowGenerate)
	pages.POST("/generate/:model", probe, h.HandleGenerate)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "Page not found"})
	})

	return r, nil
}
