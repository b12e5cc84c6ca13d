package app

import (
	"science_lms_backend/docs"
	"science_lms_backend/internal/middleware"
	"science_lms_backend/internal/model"
	"science_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		a.registerAuthenticatedRoutes(authGroup, c)
		a.registerManagementRoutes(authGroup, c)
	}
}

// registerPublicRoutes covers everything a visitor can reach without a
// token. The catalog, course detail, and dashboard use TryAuth because
// their content varies by role.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		optional := public.Group("/")
		optional.Use(middleware.TryAuthMiddleware())
		{
			optional.GET("/courses", c.course.List)
			optional.GET("/courses/:id", c.course.Get)
			optional.GET("/courses/:id/lessons", c.lesson.List)
			optional.GET("/lessons/:id", c.lesson.Get)
			optional.GET("/courses/:id/quizzes", c.quiz.ListByCourse)
			optional.GET("/courses/:id/assignments", c.assignment.ListByCourse)
			optional.GET("/courses/:id/forums", c.forum.List)
			optional.GET("/forums/:id/posts", c.forum.ListThreads)
			optional.GET("/posts/:id/replies", c.forum.ListReplies)
			optional.GET("/dashboard", c.dashboard.Dashboard)
		}
	}
}

func (a *App) registerAuthenticatedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	// enrollments and student work
	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.DELETE("/courses/:id/enroll", c.enrollment.Drop)
	rg.PUT("/courses/:id/progress", c.progress.Record)
	rg.GET("/courses/:id/progress", c.progress.ForCourse)

	// quizzes
	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.POST("/quizzes/:id/attempts", c.quiz.StartAttempt)
	rg.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
	rg.PUT("/attempts/:id", c.quiz.SubmitAttempt)

	// assignments
	rg.GET("/assignments/:id", c.assignment.Get)
	rg.PUT("/assignments/:id/draft", c.assignment.SaveDraft)
	rg.POST("/assignments/:id/submit", c.assignment.Submit)

	// forums
	rg.POST("/forums/:id/posts", c.forum.CreatePost)
	rg.PUT("/posts/:id", c.forum.EditPost)

	// chat
	rg.POST("/chat/conversations", c.chat.CreateConversation)
	rg.GET("/chat/conversations", c.chat.ListConversations)
	rg.GET("/chat/conversations/:id", c.chat.GetConversation)
	rg.POST("/chat/conversations/:id/messages", c.chat.SendMessage)
	rg.GET("/chat/conversations/:id/messages", c.chat.ListMessages)
	rg.GET("/chat/conversations/:id/unread", c.chat.UnreadCount)
	rg.PUT("/chat/messages/:id", c.chat.EditMessage)
}

// registerManagementRoutes gates course authoring and grading behind the
// teacher role; administrators pass every gate.
func (a *App) registerManagementRoutes(rg *gin.RouterGroup, c *controllers) {
	manage := rg.Group("/")
	manage.Use(middleware.RoleMiddleware(model.RoleTeacher))
	{
		manage.POST("/courses", c.course.Create)
		manage.PUT("/courses/:id", c.course.Update)
		manage.DELETE("/courses/:id", c.course.Delete)
		manage.POST("/courses/:id/complete", c.enrollment.Complete)

		manage.POST("/courses/:id/lessons", c.lesson.Create)
		manage.PUT("/courses/:id/lessons/reorder", c.lesson.Reorder)
		manage.PUT("/lessons/:id", c.lesson.Update)
		manage.DELETE("/lessons/:id", c.lesson.Delete)
		manage.PATCH("/lessons/:id/publish", c.lesson.Publish)
		manage.POST("/lessons/:id/video", c.lesson.UploadVideo)

		manage.POST("/courses/:id/quizzes", c.quiz.Create)
		manage.PUT("/quizzes/:id", c.quiz.Update)
		manage.DELETE("/quizzes/:id", c.quiz.Delete)
		manage.PATCH("/quizzes/:id/publish", c.quiz.Publish)
		manage.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		manage.PUT("/questions/:id", c.quiz.UpdateQuestion)
		manage.DELETE("/questions/:id", c.quiz.RemoveQuestion)

		manage.POST("/courses/:id/assignments", c.assignment.Create)
		manage.PUT("/assignments/:id", c.assignment.Update)
		manage.DELETE("/assignments/:id", c.assignment.Delete)
		manage.PATCH("/assignments/:id/publish", c.assignment.Publish)
		manage.GET("/assignments/:id/submissions", c.assignment.ListSubmissions)
		manage.POST("/submissions/:id/grade", c.assignment.Grade)
		manage.POST("/submissions/:id/return", c.assignment.Return)

		manage.POST("/courses/:id/forums", c.forum.Create)
		manage.PATCH("/forums/:id/lock", c.forum.Lock)
		manage.PATCH("/posts/:id/pin", c.forum.PinPost)
	}

	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.List)
		admin.PATCH("/users/:id/active", c.user.SetActive)
		admin.DELETE("/users/:id", c.user.Delete)
	}
}
