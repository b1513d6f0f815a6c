package main

import (
	"context"
	"time"

	"github.com/sohei-site/portfolio-api/config"
	"github.com/sohei-site/portfolio-api/controllers"
	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/routes"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Admin{}, &models.Content{}, &models.Image{}, &models.VisitorLog{})

	// First-run bootstrap: create the admin row from the configured
	// password when none exists. Never re-syncs an existing credential.
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := controllers.SeedAdmin(seedCtx, stores.NewGormAdminStore(db), cfg.AdminPassword); err != nil {
		utils.Sugar.Errorf("admin seed failed: %v", err)
	}
	cancel()

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
