package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"acopf/internal/api/handlers"
	"acopf/internal/api/middleware"
	"acopf/internal/config"
	"acopf/internal/opf"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfgPath := flag.String("config", "", "Optional path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Engine construction validates the solver settings; a bad override is
	// a startup failure, never a mid-request one.
	engine, err := opf.NewWithSettings(cfg.Solver.ToSettings())
	if err != nil {
		log.Fatalf("solver unavailable: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	solveHandler := handlers.NewSolveHandler(engine)
	loadingHandler := handlers.NewLoadingHandler(engine)
	api := router.Group("/api/v1")
	{
		api.POST("/solve", solveHandler.Solve)
		api.POST("/loading", loadingHandler.Loading)
		api.GET("/case", solveHandler.GetCase)
	}

	corsOpts := cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodPost}}
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	handler := cors.New(corsOpts).Handler(router)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting API server on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
