package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/domain/identity"
	"github.com/syncworks/backend/internal/interfaces/http/handler"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the API mounts
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Company    *handler.CompanyHandler
	Referrer   *handler.ReferrerHandler
	Fleet      *handler.FleetHandler
	Pricing    *handler.PricingHandler
	Quote      *handler.QuoteHandler
	Scheduling *handler.SchedulingHandler
	Dashboard  *handler.DashboardHandler
	System     *handler.SystemHandler
	// Feed is optional
	Feed *handler.FeedHub
}

// Guards are the middleware chains placed in front of route groups.
// Nil limiters are skipped.
type Guards struct {
	// JWT authenticates API calls from the Authorization header
	JWT gin.HandlerFunc
	// FeedJWT authenticates websocket upgrades, which may carry ?access_token=
	FeedJWT gin.HandlerFunc
	// PublicLimit throttles the unauthenticated quote form endpoints
	PublicLimit gin.HandlerFunc
	// AuthLimit throttles login and refresh
	AuthLimit gin.HandlerFunc
	// Idempotency deduplicates retried quote form submissions
	Idempotency gin.HandlerFunc
}

var (
	adminOnly    = middleware.RequireRole(string(identity.RoleAdmin))
	staffOrAdmin = middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleStaff))
	referrerOnly = middleware.RequireRole(string(identity.RoleReferrer))
)

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Mount registers the SyncWorks API: /health on the engine root and all
// other routes under /api/<version>. Call Setup afterwards.
func (r *Router) Mount(h Handlers, g Guards) *Router {
	r.engine.GET("/health", h.System.Health)
	r.engine.HEAD("/health", h.System.Health)
	r.engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ERR_NOT_FOUND",
				"message": "Route not found",
			},
		})
	})

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	public := NewDomainGroup("public", "/public").Use(chain(g.PublicLimit)...)
	public.GET("/companies/:code", h.Company.GetPublic)
	public.POST("/companies/:code/quotes", chain(g.Idempotency, h.Quote.Submit)...)

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", chain(g.AuthLimit, h.Auth.Login)...)
	auth.POST("/refresh", chain(g.AuthLimit, h.Auth.RefreshToken)...)
	auth.POST("/logout", g.JWT, h.Auth.Logout)
	auth.GET("/me", g.JWT, h.Auth.GetCurrentUser)
	auth.PUT("/password", g.JWT, h.Auth.ChangePassword)

	r.Register(system).
		Register(public).
		Register(auth).
		Register(companyRoutes(h, g)).
		Register(identityRoutes(h, g)).
		Register(referrerRoutes(h, g)).
		Register(fleetRoutes(h, g)).
		Register(pricingRoutes(h, g)).
		Register(quoteRoutes(h, g)).
		Register(schedulingRoutes(h, g)).
		Register(dashboardRoutes(h, g)).
		Register(portalRoutes(h, g))

	if h.Feed != nil {
		feed := NewDomainGroup("feed", "/dashboards").Use(g.FeedJWT, staffOrAdmin)
		feed.GET("/feed", h.Feed.Stream)
		r.Register(feed)
	}
	return r
}

func companyRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("company", "/company").Use(g.JWT)
	dg.GET("", staffOrAdmin, h.Company.GetMine)
	dg.PUT("", adminOnly, h.Company.UpdateProfile)
	dg.PUT("/rates", adminOnly, h.Company.UpdateRates)
	return dg
}

func identityRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("identity", "/users").Use(g.JWT, adminOnly)
	dg.POST("", h.User.Create)
	dg.GET("", h.User.List)
	dg.GET("/:id", h.User.Get)
	dg.PUT("/:id", h.User.Update)
	dg.POST("/:id/activate", h.User.Activate)
	dg.POST("/:id/deactivate", h.User.Deactivate)
	dg.PUT("/:id/password", h.User.ResetPassword)
	dg.DELETE("/:id", h.User.Delete)
	return dg
}

func referrerRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("referrers", "/referrers").Use(g.JWT)
	dg.GET("", staffOrAdmin, h.Referrer.List)
	dg.GET("/:id", staffOrAdmin, h.Referrer.Get)
	dg.GET("/:id/stats", staffOrAdmin, h.Referrer.Stats)
	dg.POST("", adminOnly, h.Referrer.Create)
	dg.PUT("/:id", adminOnly, h.Referrer.Update)
	dg.POST("/:id/activate", adminOnly, h.Referrer.Activate)
	dg.POST("/:id/deactivate", adminOnly, h.Referrer.Deactivate)
	dg.DELETE("/:id", adminOnly, h.Referrer.Delete)
	return dg
}

func fleetRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("fleet", "").Use(g.JWT)

	trucks := dg.Group("trucks", "/trucks")
	trucks.GET("", staffOrAdmin, h.Fleet.ListTrucks)
	trucks.GET("/:id", staffOrAdmin, h.Fleet.GetTruck)
	trucks.PUT("/:id/status", staffOrAdmin, h.Fleet.ChangeTruckStatus)
	trucks.POST("", adminOnly, h.Fleet.CreateTruck)
	trucks.PUT("/:id", adminOnly, h.Fleet.UpdateTruck)
	trucks.DELETE("/:id", adminOnly, h.Fleet.DeleteTruck)

	employees := dg.Group("employees", "/employees")
	employees.GET("", staffOrAdmin, h.Fleet.ListEmployees)
	employees.GET("/:id", staffOrAdmin, h.Fleet.GetEmployee)
	employees.POST("", adminOnly, h.Fleet.CreateEmployee)
	employees.PUT("/:id", adminOnly, h.Fleet.UpdateEmployee)
	employees.POST("/:id/activate", adminOnly, h.Fleet.ActivateEmployee)
	employees.POST("/:id/deactivate", adminOnly, h.Fleet.DeactivateEmployee)
	employees.DELETE("/:id", adminOnly, h.Fleet.DeleteEmployee)
	return dg
}

func pricingRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("pricing", "/pricing").Use(g.JWT)
	dg.GET("/preview", staffOrAdmin, h.Pricing.Preview)
	dg.GET("/calendar", staffOrAdmin, h.Pricing.Calendar)

	rules := dg.Group("rules", "/rules")
	rules.GET("", staffOrAdmin, h.Pricing.ListRules)
	rules.GET("/:id", staffOrAdmin, h.Pricing.GetRule)
	rules.POST("", adminOnly, h.Pricing.CreateRule)
	rules.PUT("/:id", adminOnly, h.Pricing.UpdateRule)
	rules.POST("/:id/activate", adminOnly, h.Pricing.ActivateRule)
	rules.POST("/:id/deactivate", adminOnly, h.Pricing.DeactivateRule)
	rules.DELETE("/:id", adminOnly, h.Pricing.DeleteRule)

	holidays := dg.Group("holidays", "/holidays")
	holidays.GET("", staffOrAdmin, h.Pricing.ListHolidays)
	holidays.GET("/:id", staffOrAdmin, h.Pricing.GetHoliday)
	holidays.POST("", adminOnly, h.Pricing.CreateHoliday)
	holidays.POST("/import", adminOnly, h.Pricing.ImportHolidays)
	holidays.PUT("/:id", adminOnly, h.Pricing.UpdateHoliday)
	holidays.DELETE("/:id", adminOnly, h.Pricing.DeleteHoliday)
	return dg
}

func quoteRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("quotes", "/quotes").Use(g.JWT, staffOrAdmin)
	dg.GET("", h.Quote.List)
	dg.GET("/summary", h.Quote.Summary)
	dg.GET("/number/:number", h.Quote.GetByNumber)
	dg.GET("/:id", h.Quote.Get)
	dg.PUT("/:id", h.Quote.Update)
	dg.POST("/:id/reprice", h.Quote.Reprice)
	dg.POST("/:id/quoted", h.Quote.MarkQuoted)
	dg.POST("/:id/book", h.Quote.Book)
	dg.POST("/:id/complete", h.Quote.Complete)
	dg.POST("/:id/cancel", h.Quote.Cancel)
	dg.DELETE("/:id", adminOnly, h.Quote.Delete)
	dg.GET("/:id/pdf", h.Quote.DownloadPDF)
	dg.POST("/:id/attachments", h.Quote.CreateUploadURL)
	dg.GET("/:id/attachments/download", h.Quote.CreateDownloadURL)
	dg.GET("/:id/trucks", h.Scheduling.ListAssignments)
	dg.POST("/:id/trucks", h.Scheduling.AssignTruck)
	dg.DELETE("/:id/trucks/:truck_id", h.Scheduling.UnassignTruck)
	return dg
}

func schedulingRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("scheduling", "/scheduling").Use(g.JWT, staffOrAdmin)
	dg.POST("/shifts", h.Scheduling.CreateShift)
	dg.GET("/shifts", h.Scheduling.ListShifts)
	dg.DELETE("/shifts/:id", h.Scheduling.DeleteShift)
	dg.GET("/days/:date", h.Scheduling.DaySchedule)
	dg.GET("/availability", h.Scheduling.Availability)
	return dg
}

func dashboardRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("dashboards", "/dashboards").Use(g.JWT, staffOrAdmin)
	dg.GET("/admin", h.Dashboard.Admin)
	return dg
}

// portalRoutes serve referrer accounts their own data
func portalRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("portal", "/me").Use(g.JWT, referrerOnly)
	dg.GET("/dashboard", h.Dashboard.Referrer)
	dg.GET("/quotes", h.Quote.ListMine)
	dg.GET("/quotes/:id", h.Quote.GetMine)
	return dg
}
