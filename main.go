package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file loaded: %v", err)
	}

	ctx := context.Background()
	pool, err := getDBPool(ctx)
	if err != nil {
		log.Fatalf("[main] connecting to database: %v", err)
	}
	defer pool.Close()

	h := NewHandler(pool)

	r := gin.Default()
	h.registerRoutes(r)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	log.Printf("[main] listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("[main] server exited: %v", err)
	}
}
