package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb-api/config"
	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/internal/infrastructure/postgres"
	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
	"github.com/yamdb/yamdb-api/internal/router/modules"
	"github.com/yamdb/yamdb-api/pkg/helpers"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the shared infrastructure every module draws from.
type Deps struct {
	Cfg    *config.Config
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Mail   application.EmailPublisher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

// InitModules builds the repositories, services and handlers and
// registers every feature module on the registry. Called once at
// startup.
func InitModules(r *Registry, d Deps) {
	users := postgres.NewUserRepository(d.Pool)
	categories := postgres.NewCategoryRepository(d.Pool)
	genres := postgres.NewGenreRepository(d.Pool)
	titles := postgres.NewTitleRepository(d.Pool)
	reviews := postgres.NewReviewRepository(d.Pool)
	comments := postgres.NewCommentRepository(d.Pool)

	authSvc := application.NewAuthService(users, d.JWT, d.Mail, d.Logger, d.Cfg.ConfirmationSecret, d.Cfg.MailSendEnabled)
	userSvc := application.NewUserService(users)
	catalogSvc := application.NewCatalogService(categories, genres)
	titleSvc := application.NewTitleService(titles, categories, genres, d.Redis, d.Logger, d.Cfg.RatingCacheTTL)
	reviewSvc := application.NewReviewService(reviews, comments, titleSvc)

	// Token resolution runs for every API route; anonymous requests pass
	// through and each handler decides what it requires.
	r.Use(middleware.Authenticate(d.JWT, users))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc)))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc)))
	r.Add(modules.NewTitleModule(handlers.NewTitleHandler(titleSvc)))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc)))
}
