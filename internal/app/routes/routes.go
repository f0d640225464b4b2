package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/controllers"
	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	noticeController *controllers.NoticeController,
	postController *controllers.PostController,
	inquiryController *controllers.InquiryController,
	userController *controllers.UserController,
	stayController *controllers.StayController,
	leaveController *controllers.LeaveController,
	checkInController *controllers.CheckInController,
	meritController *controllers.MeritController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/join", authController.Join)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	staffOnly := authMiddleware.RoleRequired(string(models.RoleTeacher))

	authenticated.GET("/auth/me", authController.Me)

	notices := authenticated.Group("/notices")
	{
		notices.GET("", noticeController.ListNotices)
		notices.GET("/:id", noticeController.GetNotice)

		noticesStaff := notices.Group("")
		noticesStaff.Use(staffOnly)
		{
			noticesStaff.POST("", noticeController.CreateNotice)
			noticesStaff.PUT("/:id", noticeController.UpdateNotice)
			noticesStaff.DELETE("/:id", noticeController.DeleteNotice)
		}
	}

	posts := authenticated.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.GET("/:id", postController.GetPost)
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
	}

	inquiries := authenticated.Group("/inquiries")
	{
		inquiries.GET("", inquiryController.ListInquiries)
		inquiries.GET("/:id", inquiryController.GetInquiry)
		inquiries.POST("", inquiryController.CreateInquiry)
		inquiries.PUT("/:id", inquiryController.UpdateInquiry)
		inquiries.DELETE("/:id", inquiryController.DeleteInquiry)

		inquiriesStaff := inquiries.Group("")
		inquiriesStaff.Use(staffOnly)
		{
			inquiriesStaff.PUT("/:id/reply", inquiryController.ReplyInquiry)
		}
	}

	users := authenticated.Group("/users")
	{
		users.GET("/me", userController.GetMyProfile)

		usersStaff := users.Group("")
		usersStaff.Use(staffOnly)
		{
			usersStaff.GET("", userController.ListStudents)
			usersStaff.GET("/:id", userController.GetUser)
		}
	}

	stays := authenticated.Group("/stays")
	{
		stays.PUT("", stayController.SubmitStay)
		stays.GET("", stayController.GetStay)

		staysStaff := stays.Group("")
		staysStaff.Use(staffOnly)
		{
			staysStaff.GET("/all", stayController.ListStays)
		}
	}

	leaves := authenticated.Group("/leaves")
	{
		leaves.POST("", leaveController.CreateLeave)
		leaves.GET("", leaveController.ListLeaves)
		leaves.DELETE("/:id", leaveController.WithdrawLeave)

		leavesStaff := leaves.Group("")
		leavesStaff.Use(staffOnly)
		{
			leavesStaff.PUT("/:id/decision", leaveController.DecideLeave)
		}
	}

	roomCheckIns := authenticated.Group("/roomcheckins")
	{
		roomCheckIns.POST("", checkInController.ScanCheckIn)
		roomCheckIns.GET("", checkInController.ListCheckIns)

		roomCheckInsStaff := roomCheckIns.Group("")
		roomCheckInsStaff.Use(staffOnly)
		{
			roomCheckInsStaff.GET("/qr", checkInController.GenerateQR)
		}
	}

	merits := authenticated.Group("/merits")
	{
		merits.GET("", meritController.ListMerits)
		merits.GET("/summary", meritController.GetMeritSummary)

		meritsStaff := merits.Group("")
		meritsStaff.Use(staffOnly)
		{
			meritsStaff.POST("", meritController.AwardMerit)
		}
	}
}
