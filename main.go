package main

import (
	"fmt"
	"log"

	"qrmenu/configs"
	"qrmenu/middlewares"
	"qrmenu/repository"
	"qrmenu/routes"
	"qrmenu/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate + seed
	configs.SetupDatabase()
	if err := configs.SeedDemo(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	// realtime bridge
	hub := ws.NewOrderHub(repository.NewTableRepository(db))
	go hub.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
