package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Runs every db/*.sql file in name order against DATABASE_URL. Statements
// are written to be re-runnable, so applying the whole set is always safe.
func main() {
	godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("connecting: %v", err)
	}
	defer pool.Close()

	files, err := filepath.Glob("db/*.sql")
	if err != nil {
		log.Fatalf("listing migrations: %v", err)
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("reading %s: %v", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatalf("applying %s: %v", f, err)
		}
		fmt.Printf("applied %s\n", f)
	}
}
