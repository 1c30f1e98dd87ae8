package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"weddingplanner-backend/config"
	"weddingplanner-backend/controllers"
	"weddingplanner-backend/logger"
	"weddingplanner-backend/utils"
)

// resource is the route set of one CRUD entity kind.
type resource interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

func mount(g *gin.RouterGroup, r resource) {
	g.GET("", r.List)
	g.POST("", r.Create)
	g.GET("/:id", r.Get)
	g.PATCH("/:id", r.Patch)
	g.DELETE("/:id", r.Delete)
}

// mountNested registers r under /:id/<path> of g, addressing children as
// :childId.
func mountNested(g *gin.RouterGroup, path string, r resource) {
	sub := g.Group("/:id/" + path)
	sub.GET("", r.List)
	sub.POST("", r.Create)
	sub.GET("/:childId", r.Get)
	sub.PATCH("/:childId", r.Patch)
	sub.DELETE("/:childId", r.Delete)
}

func SetupRouter(cfg config.Config, h *controllers.Handler, verifier *utils.TokenVerifier, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", controllers.WeddingHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(config.PerformanceLogger(log, cfg.SlowRequestThreshold))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(verifier))
	{
		weddings := api.Group("/weddings")
		{
			weddings.GET("", h.GetWeddings)
			weddings.POST("", h.CreateWedding)
			weddings.GET("/:id", h.GetWedding)
			weddings.PATCH("/:id", h.UpdateWedding)
			weddings.DELETE("/:id", h.DeleteWedding)
		}

		api.GET("/dashboard", h.GetDashboard)

		mount(api.Group("/events"), h.Events())
		mount(api.Group("/guest-groups"), h.GuestGroups())

		guests := api.Group("/guests")
		guests.GET("/summary", h.GuestSummary)
		guests.GET("/:id/travel", h.GetGuestTravel)
		mount(guests, h.Guests())
		mount(api.Group("/travel"), h.Travel())

		vendors := api.Group("/vendors")
		mount(vendors, h.Vendors())
		mountNested(vendors, "contracts", h.Contracts())

		budget := api.Group("/budget")
		{
			budget.GET("/summary", h.GetBudgetSummary)
			categories := budget.Group("/categories")
			mount(categories, h.BudgetCategories())
			mountNested(categories, "items", h.BudgetItems())
		}
		mount(api.Group("/expenses"), h.Expenses())

		tasks := api.Group("/tasks")
		mount(tasks, h.Tasks())
		{
			tasks.GET("/:id/checklists", h.GetChecklist)
			tasks.POST("/:id/checklists", h.AddChecklistItem)
			tasks.PATCH("/:id/checklists/:childId", h.UpdateChecklistItem)
			tasks.DELETE("/:id/checklists/:childId", h.DeleteChecklistItem)
			tasks.GET("/:id/dependencies", h.GetDependencies)
			tasks.POST("/:id/dependencies", h.AddDependency)
			tasks.DELETE("/:id/dependencies/:childId", h.RemoveDependency)
		}

		menus := api.Group("/menus")
		mount(menus, h.Menus())
		mountNested(menus, "items", h.MenuItems())
		menus.POST("/:id/approve", h.ApproveMenu)

		dances := api.Group("/dances")
		mount(dances, h.Dances())
		mountNested(dances, "participants", h.Participants())

		mount(api.Group("/accommodations"), h.Accommodations())
		mount(api.Group("/transportation"), h.Transportation())
		mount(api.Group("/files"), h.Files())
		mount(api.Group("/notes"), h.Notes())

		communications := api.Group("/communications")
		communications.POST("/send", h.SendCommunication)
		mount(communications, h.Communications())

		api.GET("/reports/export", h.ExportReport)
	}

	return r
}
