package routes

import (
	"net/http"

	"github.com/Prince260602/internhubs/internal/api/handlers"
	"github.com/Prince260602/internhubs/internal/api/middleware"
	"github.com/Prince260602/internhubs/internal/models"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Resume       *handlers.ResumeHandler
	Jobs         *handlers.ListingHandler[models.Job, models.JobPatch]
	Internships  *handlers.ListingHandler[models.Internship, models.InternshipPatch]
	Notification *handlers.NotificationHandler
	WS           *handlers.WSHandler

	Tokens middleware.TokenParser
	// ListingsRequireAdmin guards listing mutations with an admin token.
	ListingsRequireAdmin bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authed := middleware.JWTAuth(d.Tokens)

	a := r.Group("/auth")
	a.POST("/register", d.Auth.Register)
	a.POST("/login", d.Auth.Login)
	a.GET("/me", authed, d.Auth.Me)

	p := r.Group("/profile", authed)
	p.POST("/addprofile", d.Profile.Add)
	p.GET("/getprofile", d.Profile.Get)
	p.PUT("/updateprofile", d.Profile.Update)
	p.POST("/resume", d.Resume.Upload)

	var guard []gin.HandlerFunc
	if d.ListingsRequireAdmin {
		guard = []gin.HandlerFunc{authed, middleware.RequireAdmin()}
	}

	jobs := r.Group("/jobs")
	jobs.GET("/all", d.Jobs.List)
	jobs.POST("/create", append(guard, d.Jobs.Create)...)
	jobs.PUT("/:id", append(guard, d.Jobs.Update)...)
	jobs.DELETE("/delete/:id", append(guard, d.Jobs.Delete)...)

	in := r.Group("/internships")
	in.GET("/show/all", d.Internships.List)
	in.POST("/create", append(guard, d.Internships.Create)...)
	in.PUT("/update/:id", append(guard, d.Internships.Update)...)
	in.DELETE("/delete/:id", append(guard, d.Internships.Delete)...)

	r.POST("/contactus", d.Notification.Send(models.KindContactUs))
	r.POST("/interview", d.Notification.Send(models.KindInterview))
	r.POST("/not-interested", d.Notification.Send(models.KindNotInterested))
	r.POST("/hired", d.Notification.Send(models.KindHired))
	r.POST("/subscribe", d.Notification.Send(models.KindSubscribe))

	r.GET("/ws/listings", d.WS.ListingFeed)
}
