package v1

import (
	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/user"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/persistence/postgres"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/worker"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type Deps struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Notifier *ws.Notifier
	Logger   *zap.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	candidateSkillRepo := repository.NewPostgresCandidateSkillRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)

	pool := worker.NewPool(worker.DefaultConcurrency)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	candidateSkillUC := usecase.NewCandidateSkillUsecase(skillRepo, candidateSkillRepo)
	matchingUC := usecase.NewMatchingUsecase(jobRepo, jobSkillRepo, candidateSkillRepo, userRepo)
	rankingUC := usecase.NewRankingUsecase(jobRepo, jobSkillRepo, candidateSkillRepo, applicationRepo, pool)
	recommendationUC := usecase.NewRecommendationUsecase(jobRepo, jobSkillRepo, candidateSkillRepo, applicationRepo, deps.Cache, deps.Logger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, deps.Notifier)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	candidateSkillHandler := handler.NewCandidateSkillHandler(candidateSkillUC)
	matchHandler := handler.NewMatchHandler(matchingUC)
	rankingHandler := handler.NewRankingHandler(rankingUC)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	skillHandler.RegisterRoutes(protected)
	matchHandler.RegisterRoutes(protected)
	applicationHandler.RegisterRoutes(protected)

	seeker := protected.Group("", middleware.RequireRole(user.RoleJobSeeker))
	candidateSkillHandler.RegisterRoutes(seeker)
	recommendationHandler.RegisterRoutes(seeker)

	reviewer := protected.Group("", middleware.RequireRole(user.RoleCompany, user.RoleAdmin))
	rankingHandler.RegisterRoutes(reviewer)
}
