package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/chirpnet/chirp-api/config"
	"github.com/chirpnet/chirp-api/pkg/helpers"
)

const (
	userCount = 10
	postCount = 100
)

var words = []string{
	"coffee", "sunrise", "deploy", "weekend", "rain", "guitar", "refactor",
	"mountain", "pizza", "debugging", "ocean", "sketch", "marathon", "jazz",
	"garden", "rocket", "keyboard", "autumn", "bicycle", "novel",
}

func sentence(r *rand.Rand, min, max int) string {
	n := min + r.Intn(max-min+1)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[r.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	r := rand.New(rand.NewSource(42))

	userIDs := make([]int64, 0, userCount)
	for i := 1; i <= userCount; i++ {
		username := fmt.Sprintf("user-%d", i)
		hash, err := helpers.HashPassword(fmt.Sprintf("pass-%d", i))
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id int64
		err = db.QueryRow(`
			INSERT INTO users (name, username, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (username) DO UPDATE SET name=EXCLUDED.name
			RETURNING id
		`, fmt.Sprintf("User %d", i), username, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", username, err)
		}
		userIDs = append(userIDs, id)
	}
	fmt.Printf("seeded %d users (user-1..user-%d, password pass-N)\n", userCount, userCount)

	comments := 0
	for i := 0; i < postCount; i++ {
		author := userIDs[r.Intn(len(userIDs))]
		var postID int64
		err := db.QueryRow(`
			INSERT INTO posts (content, user_id) VALUES ($1, $2) RETURNING id
		`, sentence(r, 4, 12), author).Scan(&postID)
		if err != nil {
			log.Fatalf("failed to seed post: %v", err)
		}

		for j := 1 + r.Intn(20); j > 0; j-- {
			commenter := userIDs[r.Intn(len(userIDs))]
			if _, err := db.Exec(`
				INSERT INTO comments (content, post_id, user_id) VALUES ($1, $2, $3)
			`, sentence(r, 2, 8), postID, commenter); err != nil {
				log.Fatalf("failed to seed comment: %v", err)
			}
			comments++
		}
	}
	fmt.Printf("seeded %d posts and %d comments\n", postCount, comments)
}
