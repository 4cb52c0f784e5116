package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/doodledict/doodledict-api/config"
	"github.com/doodledict/doodledict-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoPlayer"
	email := "demo@doodledict.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, username, email, hash, "Demo Player").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", id, username, password)

	// A short personal-best history, strictly increasing per the ledger rule.
	for _, s := range []struct {
		score    int
		attempts int
	}{
		{score: 20, attempts: 5},
		{score: 40, attempts: 6},
		{score: 70, attempts: 8},
	} {
		if _, err := db.Exec(`
			INSERT INTO scores (username, score, total_attempts)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (
				SELECT 1 FROM scores WHERE username = $1 AND score >= $2
			)
		`, username, s.score, s.attempts); err != nil {
			log.Fatalf("failed to seed score %d: %v", s.score, err)
		}
	}
	fmt.Println("seeded personal-best history")
}
