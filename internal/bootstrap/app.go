package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/analysis"
	"talentgap-backend/internal/dataload"
	"talentgap-backend/internal/employees"
	"talentgap-backend/internal/gap"
	"talentgap-backend/internal/roles"
	"talentgap-backend/internal/shared/config"
	"talentgap-backend/internal/shared/server"
	"talentgap-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	EmployeesRepo employees.Repo
	RolesRepo     roles.Repo
	SkillsRepo    roles.SkillsRepo

	EmployeesService *employees.Service
	RolesService     *roles.Service
	AnalysisService  *analysis.Service

	EmployeesHandler *employees.Handler
	RolesHandler     *roles.Handler
	AnalysisHandler  *analysis.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.Weights == (gap.WeightConfig{}) {
		cfg.Weights = gap.DefaultWeights()
	}
	if cfg.Thresholds == (gap.BandThresholds{}) {
		cfg.Thresholds = gap.DefaultThresholds()
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	if dir := strings.TrimSpace(cfg.DataDir); dir != "" {
		loader := &dataload.Loader{Employees: app.EmployeesService, Roles: app.RolesService}
		if _, err := loader.LoadDir(ctx, dir); err != nil {
			return nil, fmt.Errorf("load seed data: %w", err)
		}
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		EmployeesHandler: app.EmployeesHandler,
		RolesHandler:     app.RolesHandler,
		AnalysisHandler:  app.AnalysisHandler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	var employeesRepo employees.Repo
	var rolesRepo roles.Repo
	var skillsRepo roles.SkillsRepo

	if app.DB != nil {
		employeesRepo = &employees.PGRepo{DB: app.DB}
		rolesRepo = &roles.PGRepo{DB: app.DB}
		skillsRepo = &roles.PGSkillsRepo{DB: app.DB}
	} else {
		employeesRepo = employees.NewMemoryRepo()
		rolesRepo = roles.NewMemoryRepo()
		skillsRepo = roles.NewMemorySkillsRepo()
	}

	employeesSvc := employees.NewService(employeesRepo)
	rolesSvc := roles.NewService(rolesRepo, skillsRepo)

	analysisSvc, err := analysis.NewService(employeesRepo, rolesSvc, app.Config.Weights, app.Config.Thresholds)
	if err != nil {
		return err
	}

	app.EmployeesRepo = employeesRepo
	app.RolesRepo = rolesRepo
	app.SkillsRepo = skillsRepo
	app.EmployeesService = employeesSvc
	app.RolesService = rolesSvc
	app.AnalysisService = analysisSvc
	app.EmployeesHandler = employees.NewHandler(employeesSvc)
	app.RolesHandler = roles.NewHandler(rolesSvc)
	app.AnalysisHandler = analysis.NewHandler(analysisSvc)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
