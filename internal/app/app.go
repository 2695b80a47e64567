package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"syntex_backend/internal/config"
	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/service"
	"syntex_backend/pkg/database"
	"syntex_backend/pkg/logger"
	"syntex_backend/pkg/monitoring"
	"syntex_backend/pkg/tracing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *Services

	tracer *sdktrace.TracerProvider
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	topic        *repository.TopicRepository
	content      *repository.ContentRepository
	batch        *repository.BatchRepository
	batchEnroll  *repository.BatchEnrollRepository
	enrollCourse *repository.EnrollCourseRepository
	rewardPoints *repository.RewardPointsRepository
	payment      *repository.PaymentRepository
	subscription *repository.SubscriptionRepository
	assignment   *repository.AssignmentRepository
}

type Services struct {
	User       *service.UserService
	Course     *service.CourseService
	Enrollment *service.EnrollmentService
	Reward     *service.RewardService
	Payment    *service.PaymentService
	Assignment *repository.AssignmentRepository
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		topic:        repository.NewTopicRepository(db),
		content:      repository.NewContentRepository(db),
		batch:        repository.NewBatchRepository(db),
		batchEnroll:  repository.NewBatchEnrollRepository(db),
		enrollCourse: repository.NewEnrollCourseRepository(db),
		rewardPoints: repository.NewRewardPointsRepository(db),
		payment:      repository.NewPaymentRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config) *Services {
	return &Services{
		User:       service.NewUserService(repos.user, cfg.Auth.BcryptCost),
		Course:     service.NewCourseService(repos.course, repos.topic, repos.content, repos.batch),
		Enrollment: service.NewEnrollmentService(repos.batchEnroll, repos.enrollCourse),
		Reward:     service.NewRewardService(repos.rewardPoints),
		Payment:    service.NewPaymentService(repos.payment, repos.subscription),
		Assignment: repos.assignment,
	}
}

// NewApp 初始化日志、追踪、监控和数据库，并装配仓储与服务
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	// 监控初始化
	monitoring.Init()

	app := &App{Config: cfg}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, errors.Wrap(err, "init tracing")
		}
		app.tracer = tp
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "init database")
	}
	app.DB = db

	app.Services = initServices(initRepositories(db), cfg)
	return app, nil
}

// ListUsers 输出后台用户列表：email、name、mobile_no、dob，按 email 排序
func (a *App) ListUsers(ctx context.Context, w io.Writer) error {
	users, err := a.Services.User.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tMOBILE NO\tDOB")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Email, u.Name, u.MobileNo, formatDOB(u))
	}
	return tw.Flush()
}

func formatDOB(u model.User) string {
	if u.DOB == nil {
		return "-"
	}
	return time.Time(*u.DOB).Format("2006-01-02")
}

// Close 推送指标、关闭 tracer 和数据库连接
func (a *App) Close() {
	if url := a.Config.Monitoring.PushgatewayURL; url != "" {
		if err := monitoring.Push(url, a.Config.Monitoring.Job); err != nil {
			logger.Log.Error("Failed to push metrics", zap.String("url", url), zap.Error(err))
		}
	}

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	_ = logger.Log.Sync()
}
