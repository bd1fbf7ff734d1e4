package router

import (
	"time"

	"consulto/config"
	"consulto/internal/domain"
	"consulto/internal/handler"
	"consulto/internal/middleware"
	"consulto/internal/repository"
	"consulto/internal/service"
	"consulto/internal/ws"
	"consulto/pkg/mailer"
	"consulto/pkg/searchindex"
	"consulto/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, index searchindex.Client, store storage.Client, mail mailer.Mailer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	repos := repository.NewRepos(db)
	tx := repository.NewTxManager(db)

	roomHub := ws.NewRoomHub()

	// Services
	authSvc := service.NewAuthService(cfg, repos.Users)
	notifSvc := service.NewNotificationService(mail, cfg.Smtp.From)
	reviewSvc := service.NewReviewService(tx, index, store, notifSvc)
	settlementSvc := service.NewSettlementService(tx, cfg.Fee)
	ratingSvc := service.NewRatingService(tx, repos, index)
	consultationSvc := service.NewConsultationService(tx, cfg.Fee)
	roomSvc := service.NewRoomService(&cfg.JWT, repos.Consultations)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, cfg, repos.Users)
	requestHandler := handler.NewRequestHandler(repos.Requests, repos.Identities, store)
	adminHandler := handler.NewAdminHandler(authSvc, reviewSvc, repos.Requests)
	settlementHandler := handler.NewSettlementHandler(settlementSvc, repos.Settlements)
	ratingHandler := handler.NewRatingHandler(ratingSvc, repos.Ratings)
	consultationHandler := handler.NewConsultationHandler(consultationSvc, roomSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		requests := api.Group("/requests")
		requests.Use(authMw)
		{
			requests.POST("/identity", requestHandler.SubmitIdentity)
			requests.POST("/career", middleware.RequireRole(domain.RoleConsultant), requestHandler.SubmitCareer)
		}

		consultations := api.Group("/consultations")
		consultations.Use(authMw)
		{
			consultations.POST("", middleware.RequireRole(domain.RoleUser), consultationHandler.Book)
			consultations.POST("/:id/room-token", consultationHandler.RoomToken)
			consultations.POST("/:id/rating/consultant", middleware.RequireRole(domain.RoleUser), ratingHandler.RateConsultant)
			consultations.POST("/:id/rating/user", middleware.RequireRole(domain.RoleConsultant), ratingHandler.RateUser)
		}

		api.GET("/consultants/:id/rating", authMw, ratingHandler.ConsultantSummary)

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.AdminLogin)

			reviews := admin.Group("/requests")
			reviews.Use(authMw, adminMw)
			{
				reviews.GET("/identity", adminHandler.ListIdentityRequests)
				reviews.GET("/career", adminHandler.ListCareerRequests)
				reviews.POST("/identity/:id/approve", adminHandler.ApproveIdentityRequest)
				reviews.POST("/identity/:id/reject", adminHandler.RejectIdentityRequest)
				reviews.POST("/career/:id/approve", adminHandler.ApproveCareerRequest)
				reviews.POST("/career/:id/reject", adminHandler.RejectCareerRequest)
			}

			settlements := admin.Group("/settlements")
			settlements.Use(authMw, adminMw)
			{
				settlements.GET("/payments", settlementHandler.ListAwaitingPayments)
				settlements.GET("/payments/expired", settlementHandler.ListExpiredPayments)
				settlements.GET("/withdrawals", settlementHandler.ListAwaitingWithdrawals)
				settlements.GET("/withdrawals/left", settlementHandler.ListLeftWithdrawals)
				settlements.POST("/payments/:consultation_id/settle", settlementHandler.SettlePayment)
				settlements.POST("/payments/:consultation_id/confirm", settlementHandler.ConfirmPayment)
				settlements.POST("/payments/:consultation_id/neglect", settlementHandler.NeglectPayment)
				settlements.POST("/withdrawals/:consultation_id/settle", settlementHandler.SettleWithdrawal)
				settlements.POST("/withdrawals/:consultation_id/stop", settlementHandler.StopWithdrawal)
			}
		}

		api.GET("/ws/room", handler.UpgradeRoomWS(&cfg.JWT, roomHub, roomSvc))
	}

	return r
}
