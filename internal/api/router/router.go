package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"taskup/internal/adapter/storage"
	"taskup/internal/api/handler"
	"taskup/internal/api/middleware"
	"taskup/internal/chat"
	"taskup/internal/lifecycle"
	"taskup/internal/pkg/config"
	"taskup/internal/repository"
	"taskup/internal/service"
)

// Dependencies 路由依赖, 由main装配
type Dependencies struct {
	DB           *gorm.DB
	Store        storage.ObjectStorage
	Verification service.VerificationService
}

// Setup 设置路由
func Setup(cfg *config.Config, deps *Dependencies) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := deps.DB

	// 生命周期组件
	access := lifecycle.NewAccessEngine(db)
	resolver := lifecycle.NewResolver(db)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	projectMemberRepo := repository.NewProjectMemberRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	teamMemberRepo := repository.NewTeamMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	stakeholderRepo := repository.NewStakeholderRepository(db)
	scopeRepo := repository.NewScopeRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, deps.Verification)
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, userRepo, access)
	hub := chat.NewHub(chatService, cfg.Chat.HistorySize)
	projectService := service.NewProjectService(projectRepo, projectMemberRepo, userRepo, access, resolver, hub)
	teamService := service.NewTeamService(teamRepo, access, resolver)
	teamMemberService := service.NewTeamMemberService(teamMemberRepo, teamRepo, projectMemberRepo, access, resolver)
	taskService := service.NewTaskService(taskRepo, teamRepo, teamMemberRepo, projectMemberRepo, access, resolver)
	stakeholderService := service.NewStakeholderService(stakeholderRepo, userRepo, access)
	scopeService := service.NewScopeService(scopeRepo, access)
	riskService := service.NewRiskService(riskRepo, access)
	resourceService := service.NewResourceService(resourceRepo, access)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, deps.Store, access)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	emailHandler := handler.NewEmailHandler(deps.Verification)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	teamHandler := handler.NewTeamHandler(teamService)
	teamMemberHandler := handler.NewTeamMemberHandler(teamMemberService)
	taskHandler := handler.NewTaskHandler(taskService)
	stakeholderHandler := handler.NewStakeholderHandler(stakeholderService)
	scopeHandler := handler.NewScopeHandler(scopeService)
	riskHandler := handler.NewRiskHandler(riskService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	chatHandler := handler.NewChatHandler(hub, chatService, access)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证与邮箱验证(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}
		emailGroup := v1.Group("/email")
		{
			emailGroup.POST("/send-code", emailHandler.SendCode)
			emailGroup.POST("/verify-code", emailHandler.VerifyCode)
		}

		// 聊天websocket, token走query参数自行校验
		v1.GET("/projects/:id/chat", chatHandler.Join)

		// 需要认证的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			// 认证信息与用户
			authed.GET("/auth/me", authHandler.Me)
			authed.GET("/users", userHandler.Search)
			authed.GET("/users/:id", userHandler.GetByID)
			authed.PUT("/users/me", userHandler.Update)

			// 项目管理
			groupProjects := authed.Group("/projects")
			{
				groupProjects.POST("", projectHandler.Create)
				groupProjects.GET("", projectHandler.List)
				groupProjects.GET("/:id", projectHandler.GetByID)
				groupProjects.PUT("/:id", projectHandler.Update)
				groupProjects.DELETE("/:id", projectHandler.Delete)

				// 项目成员
				groupProjects.POST("/:id/members", projectHandler.AddMember)
				groupProjects.GET("/:id/members", projectHandler.ListMembers)
				groupProjects.DELETE("/:id/members/:user_id", projectHandler.RemoveMember)

				// 项目聊天
				groupProjects.POST("/:id/chat/read", chatHandler.MarkRead)

				// 项目附属资源
				groupProjects.GET("/:id/teams", teamHandler.ListByProject)
				groupProjects.GET("/:id/tasks", taskHandler.ListByProject)
				groupProjects.POST("/:id/stakeholders", stakeholderHandler.Create)
				groupProjects.GET("/:id/stakeholders", stakeholderHandler.ListByProject)
				groupProjects.POST("/:id/scope", scopeHandler.Create)
				groupProjects.GET("/:id/scope", scopeHandler.GetByProject)
				groupProjects.PUT("/:id/scope", scopeHandler.Update)
				groupProjects.POST("/:id/risks", riskHandler.Create)
				groupProjects.GET("/:id/risks", riskHandler.ListByProject)
				groupProjects.POST("/:id/resources", resourceHandler.Create)
				groupProjects.GET("/:id/resources", resourceHandler.ListByProject)
			}

			// 团队管理
			groupTeams := authed.Group("/teams")
			{
				groupTeams.POST("", teamHandler.Create)
				groupTeams.GET("/:id", teamHandler.GetByID)
				groupTeams.PUT("/:id", teamHandler.Update)
				groupTeams.DELETE("/:id", teamHandler.Delete)

				groupTeams.GET("/:id/tasks", taskHandler.ListByTeam)
				groupTeams.POST("/:id/members", teamMemberHandler.Add)
				groupTeams.GET("/:id/members", teamMemberHandler.List)
				groupTeams.DELETE("/:id/members/:user_id", teamMemberHandler.Remove)
			}

			// 任务管理
			groupTasks := authed.Group("/tasks")
			{
				groupTasks.POST("", taskHandler.Create)
				groupTasks.GET("/mine", taskHandler.ListMine)
				groupTasks.GET("/:id", taskHandler.GetByID)
				groupTasks.PUT("/:id", taskHandler.Update)
				groupTasks.PATCH("/:id/complete", taskHandler.Complete)
				groupTasks.DELETE("/:id", taskHandler.Delete)
				groupTasks.GET("/:id/subtasks", taskHandler.ListSubtasks)
			}

			// 干系人/风险/资源
			authed.PUT("/stakeholders/:id", stakeholderHandler.Update)
			authed.DELETE("/stakeholders/:id", stakeholderHandler.Delete)
			authed.PUT("/risks/:id", riskHandler.Update)
			authed.DELETE("/risks/:id", riskHandler.Delete)
			authed.PUT("/resources/:id", resourceHandler.Update)
			authed.DELETE("/resources/:id", resourceHandler.Delete)

			// 附件
			groupAttachments := authed.Group("/attachments")
			{
				groupAttachments.POST("", attachmentHandler.Upload)
				groupAttachments.GET("", attachmentHandler.List)
				groupAttachments.GET("/:id/download", attachmentHandler.DownloadURL)
				groupAttachments.DELETE("/:id", attachmentHandler.Delete)
			}
		}
	}

	return r
}
