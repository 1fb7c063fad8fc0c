package router

import (
	"net/http"

	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/middleware"
	"cineforo/internal/microservices/websocket"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Reference *handler.ReferenceHandler
	Topic     *handler.TopicHandler
	Comment   *handler.CommentHandler
	Movie     *handler.MovieHandler
	Favorite  *handler.FavoriteHandler
}

type Options struct {
	Validator   middleware.TokenValidator
	Hub         *websocket.Hub
	TopicExists websocket.TopicExistsFunc
	CORSOrigins []string
	// Sentry enables the sentry-go gin middleware; sentry.Init must have run already
	Sentry bool
}

// NewRouter builds the gin engine with public auth/catalog routes and
// everything else behind the bearer token middleware
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected",
		})
	})

	api := r.Group("/api")

	// public
	h.Auth.RegisterRoutes(api.Group("/auth"))
	h.Reference.RegisterRoutes(api)
	h.Movie.RegisterRoutes(api.Group("/movies"))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Validator))
	{
		h.User.RegisterRoutes(protected.Group("/users"))
		h.Topic.RegisterRoutes(protected.Group("/topics"))
		h.Comment.RegisterRoutes(protected)
		h.Favorite.RegisterRoutes(protected.Group("/favorites"))
		protected.GET("/ws/topics/:id", websocket.WSHandler(opts.Hub, opts.TopicExists))
	}

	return r
}
