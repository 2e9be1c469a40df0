package api

import (
	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	User          *repositories.UserRepository
	Assignment    *repositories.AssignmentRepository
	Activity      *repositories.ActivityRepository
	Session       *repositories.SessionRepository
	Qualification *repositories.QualificationRepository
	Verification  *repositories.VerificationRepository
	Message       *repositories.MessageRepository
	Skill         *repositories.SkillRepository
	SkillImport   *repositories.SkillImportRepository
	CV            *repositories.CVRepository
	Report        *repositories.ReportRepository
}

type Services struct {
	Cache        common.CacheInterface
	Tokens       *auth.TokenService
	Sessions     *common.SessionService
	Auth         *services.AuthService
	Authz        *services.AuthzService
	User         *services.UserService
	Assignment   *services.AssignmentService
	Item         *services.ItemService
	Verification *services.VerificationService
	Message      *services.MessageService
	Skill        *services.SkillService
	CV           *services.CVService
	Report       *services.ReportService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	SqlxDB   *sqlx.DB
	Redis    *redis.Client
}

func InitDependencies(sqlxDB *sqlx.DB, gormDB *gorm.DB, redisClient *redis.Client,
	metricsReg *metrics.MetricsRegistry, jwtSecret []byte) (*Dependencies, error) {

	repos := &Repositories{
		User:          repositories.NewUserRepository(gormDB),
		Assignment:    repositories.NewAssignmentRepository(gormDB),
		Activity:      repositories.NewActivityRepository(gormDB),
		Session:       repositories.NewSessionRepository(gormDB),
		Qualification: repositories.NewQualificationRepository(gormDB),
		Verification:  repositories.NewVerificationRepository(gormDB),
		Message:       repositories.NewMessageRepository(gormDB),
		Skill:         repositories.NewSkillRepository(gormDB),
		SkillImport:   repositories.NewSkillImportRepository(sqlxDB),
		CV:            repositories.NewCVRepository(gormDB),
		Report:        repositories.NewReportRepository(sqlxDB),
	}

	// prefer the shared redis cache so assignment lookups stay coherent
	// across replicas; fall back to in-process when redis is unreachable
	var cacheSvc common.CacheInterface
	if redisCache, err := common.NewRedisCacheService(redisClient); err == nil {
		cacheSvc = redisCache
	} else {
		logging.Warn("Redis cache unavailable, using in-memory cache", "error", err)
		cacheSvc = common.NewCacheService(60, 600)
	}

	tokenSvc := auth.NewTokenService(jwtSecret, redisClient)
	sessionSvc := common.NewSessionService(redisClient)

	authzSvc := services.NewAuthzService(repos.Assignment, cacheSvc)
	assignmentSvc := services.NewAssignmentService(repos.Assignment, repos.User, authzSvc, metricsReg)

	svcs := &Services{
		Cache:      cacheSvc,
		Tokens:     tokenSvc,
		Sessions:   sessionSvc,
		Auth:       services.NewAuthService(repos.User, tokenSvc, sessionSvc),
		Authz:      authzSvc,
		User:       services.NewUserService(repos.User),
		Assignment: assignmentSvc,
		Item: services.NewItemService(repos.Activity, repos.Session, repos.Qualification,
			repos.User, assignmentSvc, authzSvc),
		Verification: services.NewVerificationService(repos.Verification, repos.Activity,
			repos.Session, repos.Qualification, authzSvc, metricsReg),
		Message: services.NewMessageService(repos.Message, repos.User, authzSvc, metricsReg),
		Skill:   services.NewSkillService(repos.Skill, repos.SkillImport, authzSvc, metricsReg),
		CV:      services.NewCVService(repos.CV, authzSvc),
		Report:  services.NewReportService(repos.Report),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		SqlxDB:   sqlxDB,
		Redis:    redisClient,
	}, nil
}
