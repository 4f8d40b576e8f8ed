package internal

import (
	"fmt"
	"net/http"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/handler"
	"github.com/dushixiang/pipvault/internal/middleware"
	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/service"
	"github.com/dushixiang/pipvault/internal/telegram"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Run(configPath string) error {
	app := NewPipVaultApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewPipVaultApp() orz.Application {
	return &PipVaultApp{}
}

var _ orz.Application = (*PipVaultApp)(nil)

type AppComponents struct {
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	TradeHandler   *handler.TradeHandler
	StatsHandler   *handler.StatsHandler
	AdminHandler   *handler.AdminHandler

	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	DigestService  *service.DigestService

	tg *telegram.Telegram
}

type PipVaultApp struct {
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *PipVaultApp) GetComponents() *AppComponents {
	return r.components
}

func (r *PipVaultApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.Normalize()

	if err := Migrate(db); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	if err := Setup(e, logger, components); err != nil {
		logger.Fatal("failed to setup http", zap.Error(err))
	}
	return nil
}

// Migrate 自动建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		models.User{}, models.AuthCode{}, models.Profile{}, models.Trade{},
	)
}

// Setup 注册中间件和路由
func Setup(e *echo.Echo, logger *zap.Logger, components *AppComponents) error {
	e.Use(echomw.Gzip())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		Skipper:      echomw.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("[PANIC RECOVER]", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))

	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		return fmt.Errorf("failed to init custom validator: %w", err)
	}
	e.Validator = &customValidator

	auth := middleware.JWTAuth(middleware.JWTAuthConfig{
		AuthService: components.AuthService,
		Logger:      logger,
	})

	api := e.Group("/api")
	{
		components.AuthHandler.RegisterRoutes(api)
		components.AuthHandler.RegisterProtectedRoutes(api.Group("/auth", auth))

		protected := api.Group("", auth)
		components.ProfileHandler.RegisterRoutes(protected)
		components.TradeHandler.RegisterRoutes(protected)
		components.StatsHandler.RegisterRoutes(protected)

		admin := api.Group("/admin", auth, middleware.RequireAdmin(components.ProfileService, logger))
		components.AdminHandler.RegisterRoutes(admin)
	}
	return nil
}

func (r *PipVaultApp) Init(logger *zap.Logger) error {
	logger.Info("PipVault trading journal starting...")

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	if components.tg != nil {
		components.tg.Start()
		logger.Info("telegram bot started")
	}
	if err := components.DigestService.Start(); err != nil {
		return err
	}
	return nil
}
