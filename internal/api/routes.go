package api

import (
	"net/http"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.DietPlanService,
	memberService service.MemberService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewDietPlanHandler(planService)
	memberHandler := NewMemberHandler(memberService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Diet Plan Routes ---
		planGroup := protected.Group("/diet-plans")
		{
			// Listing is open to both roles: admins see everything,
			// trainers see their own plans.
			planGroup.GET("", planHandler.GetPlans)
			planGroup.GET("/:id", planHandler.GetPlanByID)

			// Mutations are trainer-only; ownership is enforced in the
			// service layer on top of the role check.
			planGroup.POST("", RoleMiddleware(domain.RoleTrainer), planHandler.CreatePlan)
			planGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.UpdatePlan)
			planGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), planHandler.DeletePlan)

			// Assignment ledger for persisted plans.
			planGroup.POST("/:id/members", RoleMiddleware(domain.RoleTrainer), planHandler.AssignMember)
			planGroup.DELETE("/:id/members/:memberId", RoleMiddleware(domain.RoleTrainer), planHandler.UnassignMember)
		}

		// --- Member Directory Routes ---
		memberGroup := protected.Group("/members")
		{
			memberGroup.GET("", memberHandler.GetMembers)
			memberGroup.POST("", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), memberHandler.CreateMember)
		}
	}
}
