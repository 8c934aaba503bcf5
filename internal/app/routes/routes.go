package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/stagehub/stagehub/internal/app/controllers"
	"github.com/stagehub/stagehub/internal/app/policy"
	"github.com/stagehub/stagehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	healthController *controllers.HealthController,
	studentController *controllers.StudentController,
	companyController *controllers.CompanyController,
	internshipController *controllers.InternshipController,
	messagingController *controllers.MessagingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	health := v1.Group("/health")
	{
		health.GET("/ping", healthController.Ping)
		health.GET("/check-token", healthController.CheckToken)
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/change-password", authController.ChangePassword)

	companies := authenticated.Group("/entreprises")
	{
		companies.GET("",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpList),
			companyController.GetCompanies)
		companies.GET("/:id",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpGet),
			companyController.GetCompany)
		companies.GET("/:id/image",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpImage),
			companyController.GetCompanyImage)
		companies.POST("/create-Entreprise",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpCreate),
			companyController.CreateCompany)
		companies.PUT("/edit-Entreprise/:id",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpUpdate),
			companyController.UpdateCompany)
		companies.DELETE("/:id",
			authMiddleware.RequirePermission(policy.ResourceCompanies, policy.OpDelete),
			companyController.DeleteCompany)
	}

	students := authenticated.Group("/etudiants")
	{
		students.GET("",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpList),
			studentController.GetStudents)
		students.GET("/:id",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpGet),
			studentController.GetStudent)
		students.GET("/:id/image",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpImage),
			studentController.GetStudentImage)
		students.POST("/create-etudiant",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpCreate),
			studentController.CreateStudent)
		students.PUT("/edit-profile",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpUpdate),
			studentController.EditProfile)
		students.POST("/edit-profile/image",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpUpdate),
			studentController.UploadImage)
		students.DELETE("/:id",
			authMiddleware.RequirePermission(policy.ResourceStudents, policy.OpDelete),
			studentController.DeleteStudent)
	}

	internships := authenticated.Group("/stages")
	{
		internships.GET("",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpList),
			internshipController.GetInternships)
		internships.GET("/:id",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpGet),
			internshipController.GetInternship)
		internships.POST("",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpCreate),
			internshipController.CreateInternship)
		internships.PUT("/:id",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpUpdate),
			internshipController.UpdateInternship)
		internships.PATCH("/:id/status",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpStatus),
			internshipController.UpdateStatus)
		internships.DELETE("/:id",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpDelete),
			internshipController.DeleteInternship)
		internships.POST("/:id/apply",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpApply),
			internshipController.Apply)
		internships.GET("/:id/applications",
			authMiddleware.RequirePermission(policy.ResourceInternships, policy.OpListApplications),
			internshipController.GetApplications)
	}

	messaging := authenticated.Group("/messaging")
	{
		messaging.POST("/conversations",
			authMiddleware.RequirePermission(policy.ResourceMessaging, policy.OpCreate),
			messagingController.CreateConversation)
		messaging.GET("/conversations",
			authMiddleware.RequirePermission(policy.ResourceMessaging, policy.OpList),
			messagingController.ListConversations)
		messaging.GET("/conversations/:id",
			authMiddleware.RequirePermission(policy.ResourceMessaging, policy.OpGet),
			messagingController.GetMessages)
		messaging.POST("/conversations/:id/messages",
			authMiddleware.RequirePermission(policy.ResourceMessaging, policy.OpSend),
			messagingController.SendMessage)
	}
}
