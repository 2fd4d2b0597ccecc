package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/courseplanner/internal/app/controllers"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/middleware"
	"github.com/yigit/courseplanner/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	planController *controllers.PlanController,
	authMiddleware *middleware.AuthMiddleware,
	gatherer prometheus.Gatherer,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Message:   "Service is healthy",
			Timestamp: time.Now(),
		})
	})

	// --- Authenticated plan routes ---
	plans := v1.Group("/plans/:curriculumId/:departmentId")
	plans.Use(authMiddleware.JWTAuth())
	plans.Use(authMiddleware.RoleRequired(auth.RoleStudent, auth.RoleAdvisor))
	{
		plans.GET("", planController.GetPlan)
		plans.GET("/addable", planController.ListAddable)
		plans.GET("/concentrations", planController.AnalyzeConcentrations)
		plans.POST("/check", planController.CheckCourse)

		courses := plans.Group("/courses")
		{
			courses.POST("", planController.AddCourse)
			courses.GET("/:entryId/dependents", planController.GetDependents)
			courses.DELETE("/:entryId", planController.RemoveCourse)
			courses.PATCH("/:entryId/status", planController.UpdateStatus)
		}
	}
}
