package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	controllers "github.com/greenroots/social-server/controllers"
	middleware "github.com/greenroots/social-server/middleware"
)

// NewRouter builds the engine with the middleware stack and every route.
func NewRouter(env *controllers.Env, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(env.Log),
		middleware.AccessLog(env.Log),
		middleware.NewMetrics(reg).Handler(),
		middleware.CORS(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	SetupRoutes(r, env)
	return r
}

func SetupRoutes(r *gin.Engine, env *controllers.Env) {
	r.GET("/", controllers.Root())
	r.GET("/health", controllers.Health(env))
	r.POST("/uploads/thumbnail", controllers.UploadThumbnail(env))

	trees := r.Group("/trees")
	{
		trees.POST("", controllers.CreateTree(env))
		trees.GET("", controllers.ListTrees(env))
		trees.GET("/:id", controllers.GetTree(env))
		trees.DELETE("/:id", controllers.DeleteTree(env))
	}

	events := r.Group("/events")
	{
		events.POST("", controllers.CreateEvent(env))
		events.GET("", controllers.ListEvents(env))
		events.GET("/:id", controllers.GetEvent(env))
		events.PATCH("/:id", controllers.UpdateEvent(env))
	}

	joins := r.Group("/join-event")
	{
		joins.POST("", controllers.JoinEvent(env))
		joins.GET("", controllers.ListJoins(env))
		joins.GET("/:id", controllers.GetJoin(env))
	}
}
