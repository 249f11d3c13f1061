package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/motorline/dealership-backend/config"
	"github.com/motorline/dealership-backend/pkg/helpers"
)

// Seeds an initial admin account so the dashboard is reachable on a fresh
// database. Re-running updates the name/role but keeps the existing password.
func main() {
	email := flag.String("email", "admin@motorline.example", "admin email")
	password := flag.String("password", "changeme123", "admin password")
	name := flag.String("name", "Site Admin", "display name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url, role)
		VALUES ($1, $2, $3, '', 'admin')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = 'admin'
		RETURNING id
	`, *email, hash, *name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s name=%s\n", id, *email, *name)
}
