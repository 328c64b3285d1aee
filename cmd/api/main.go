package main

import (
	"fmt"
	"net/http"

	"github.com/gestipay/paie-backend-go/internal/config"
	appHTTP "github.com/gestipay/paie-backend-go/internal/handler/http"
	"github.com/gestipay/paie-backend-go/internal/pkg/cron"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/gestipay/paie-backend-go/internal/pkg/jwt"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
	"github.com/gestipay/paie-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/gestipay/paie-backend-go/internal/service/auth"
	"github.com/gestipay/paie-backend-go/internal/service/authz"
	dashboardService "github.com/gestipay/paie-backend-go/internal/service/dashboard"
	entrepriseService "github.com/gestipay/paie-backend-go/internal/service/entreprise"
	paiementService "github.com/gestipay/paie-backend-go/internal/service/paiement"
	paycycleService "github.com/gestipay/paie-backend-go/internal/service/paycycle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	entrepriseRepo := postgresql.NewEntrepriseRepository(db)
	cycleRepo := postgresql.NewCycleRepository(db)
	bulletinRepo := postgresql.NewBulletinRepository(db)
	paiementRepo := postgresql.NewPaiementRepository(db)
	employeRepo := postgresql.NewEmployeRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	guard := authz.NewGuard()

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	entrepriseSvc := entrepriseService.NewEntrepriseService(entrepriseRepo, guard)
	cycleSvc := paycycleService.NewCycleService(db, cycleRepo, bulletinRepo, employeRepo, auditRepo, guard, hub)
	paiementSvc := paiementService.NewPaiementService(paiementRepo, bulletinRepo, cycleRepo, auditRepo, guard, hub)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	entrepriseHandler := appHTTP.NewEntrepriseHandler(entrepriseSvc)
	cycleHandler := appHTTP.NewCycleHandler(cycleSvc)
	paiementHandler := appHTTP.NewPaiementHandler(paiementSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, jwtService, hub)

	scheduler := cron.NewScheduler()
	cron.RegisterUnpaidAlertsJob(scheduler, dashboardRepo, hub, cfg.App.AlertInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		entrepriseHandler,
		cycleHandler,
		paiementHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
