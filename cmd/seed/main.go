package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/yamdb/yamdb-api/config"
)

// Starter catalog tags. Safe to run repeatedly: everything upserts on
// its natural key.
var categories = [][2]string{
	{"Books", "books"},
	{"Films", "films"},
	{"Music", "music"},
}

var genres = [][2]string{
	{"Drama", "drama"},
	{"Comedy", "comedy"},
	{"Thriller", "thriller"},
	{"Fantasy", "fantasy"},
	{"Sci-Fi", "sci-fi"},
	{"Rock", "rock"},
	{"Classical", "classical"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, c := range categories {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		`, c[0], c[1]); err != nil {
			log.Fatalf("failed to seed category %s: %v", c[1], err)
		}
	}
	fmt.Printf("seeded %d categories\n", len(categories))

	for _, g := range genres {
		if _, err := db.Exec(`
			INSERT INTO genres (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		`, g[0], g[1]); err != nil {
			log.Fatalf("failed to seed genre %s: %v", g[1], err)
		}
	}
	fmt.Printf("seeded %d genres\n", len(genres))

	// Bootstrap administrator. The account still goes through the normal
	// signup + token exchange to obtain credentials; seeding only fixes
	// the role so the first operator does not need manual SQL.
	adminUser := getenvDefault("SEED_ADMIN_USERNAME", "admin")
	adminEmail := getenvDefault("SEED_ADMIN_EMAIL", "admin@example.com")
	var id string
	if err := db.QueryRow(`
		INSERT INTO users (username, email, role, is_staff, is_active)
		VALUES ($1, $2, 'admin', TRUE, FALSE)
		ON CONFLICT (username) DO UPDATE SET role = 'admin', is_staff = TRUE
		RETURNING id
	`, adminUser, adminEmail).Scan(&id); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("admin ensured: id=%s username=%s email=%s\n", id, adminUser, adminEmail)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
