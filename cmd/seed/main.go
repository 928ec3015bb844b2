package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/heart-api/config"
	"github.com/oksasatya/heart-api/pkg/helpers"
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

	email := "demo@heart.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	var topicID string
	err = db.QueryRow(`
		SELECT id FROM topics WHERE user_id = $1 AND name = $2
	`, id, "Cardiac rehabilitation").Scan(&topicID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO topics (user_id, name, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, id, "Cardiac rehabilitation", "Exercise-based programs after myocardial infarction").Scan(&topicID)
	}
	if err != nil {
		log.Fatalf("failed to seed topic: %v", err)
	}
	fmt.Printf("seeded topic: id=%s\n", topicID)

	var entries int
	if err := db.QueryRow(`SELECT COUNT(*) FROM research_entries WHERE topic_id = $1`, topicID).Scan(&entries); err != nil {
		log.Fatalf("failed to count entries: %v", err)
	}
	if entries == 0 {
		if _, err := db.Exec(`
			INSERT INTO research_entries (topic_id, user_id, original_text, source)
			VALUES ($1, $2, $3, $4)
		`, topicID, id,
			"Supervised exercise training improves functional capacity in patients recovering from a cardiac event.",
			"Journal of Cardiopulmonary Rehabilitation"); err != nil {
			log.Fatalf("failed to seed entry: %v", err)
		}
		fmt.Println("seeded one research entry")
	}
}
