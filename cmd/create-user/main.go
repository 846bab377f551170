package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func prompt(r *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}
	return strings.TrimSpace(line)
}

func main() {
	godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	r := bufio.NewReader(os.Stdin)
	username := prompt(r, "username")
	email := prompt(r, "email")
	password := prompt(r, "password")
	if username == "" || email == "" || password == "" {
		log.Fatal("username, email and password are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}
	token := uuid.NewString()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("connecting: %v", err)
	}
	defer pool.Close()

	var id int
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, auth_token, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		username, email, token, string(hash)).Scan(&id)
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}

	fmt.Printf("created user %d\nauth token: %s\n", id, token)
}
