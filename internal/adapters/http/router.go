package http

import (
	"context"

	"github.com/dkeye/Parley/internal/adapters/chat"
	"github.com/dkeye/Parley/internal/app"
	"github.com/dkeye/Parley/internal/auth"
	"github.com/dkeye/Parley/internal/config"
	"github.com/dkeye/Parley/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ClientTokenMiddleware hands every browser a stable uuid cookie that
// becomes the websocket SessionID.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator, authSvc *auth.Service, store storage.Store) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookieStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ParleySessions", cookieStore))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &Handlers{Auth: authSvc, Store: store, Rooms: coord.Rooms}

	api := r.Group("/api")
	api.POST("/signup", h.SignUp)
	api.POST("/login", h.LogIn)
	api.GET("/users", h.ListUsers)
	api.GET("/messages/group", h.RoomHistory)
	api.GET("/messages/private", h.DirectHistory)
	api.GET("/rooms", h.ListRooms)

	r.GET("/ws/chat", func(c *gin.Context) {
		ctrl := chat.NewChatWSController(coord)
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws chat endpoint hit")
		ctrl.HandleChat(ctx, c)
	})

	return r
}
