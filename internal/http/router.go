package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/handlers"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/middleware"
)

// BuildRouter wires every endpoint. Catalog reads are public; catalog
// writes need the teacher role; cart, checkout and order history need
// any authenticated account.
func BuildRouter(
	ah *handlers.AuthHandlers,
	ch *handlers.CourseHandlers,
	crh *handlers.CartHandlers,
	oh *handlers.OrderHandlers,
	tokenSvc domain.TokenService,
	sessionRepo domain.SessionRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	authRequired := middleware.AuthMiddleware(tokenSvc, sessionRepo)
	teacherOnly := middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin)

	auth := r.Group("/auth")
	auth.POST("/otp/request", ah.RequestCode)
	auth.POST("/otp/verify", ah.Verify)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/password/reset", ah.ResetPassword)

	me := r.Group("/auth").Use(authRequired)
	me.GET("/me", ah.Me)
	me.PATCH("/me", ah.UpdateMe)
	me.POST("/phone/change", ah.ChangePhone)
	me.POST("/logout", ah.Logout)

	courses := r.Group("/courses")
	courses.GET("", ch.ListCourses)
	courses.GET("/:slug", ch.GetCourse)

	authoring := r.Group("/teach").Use(authRequired, teacherOnly)
	authoring.POST("/courses", ch.CreateCourse)
	authoring.PUT("/courses/:id", ch.UpdateCourse)
	authoring.DELETE("/courses/:id", ch.DeleteCourse)
	authoring.GET("/courses/:id/chapters", ch.ListChapters)
	authoring.POST("/courses/:id/chapters", ch.CreateChapter)
	authoring.PUT("/chapters/:id", ch.UpdateChapter)
	authoring.DELETE("/chapters/:id", ch.DeleteChapter)
	authoring.POST("/chapters/:id/videos", ch.AddVideo)
	authoring.PUT("/videos/:id", ch.UpdateVideo)
	authoring.DELETE("/videos/:id", ch.DeleteVideo)

	cart := r.Group("/cart").Use(authRequired)
	cart.GET("", crh.GetCart)
	cart.POST("/items", crh.AddItem)
	cart.DELETE("/items/:course_id", crh.RemoveItem)
	cart.POST("/:id/purchase", crh.Purchase)

	orders := r.Group("/orders").Use(authRequired)
	orders.GET("", oh.ListOrders)
	orders.GET("/:id", oh.GetOrder)
	orders.GET("/enrollments", oh.ListEnrollments)

	return r
}
