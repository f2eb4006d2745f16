package main

import (
	"log"
	"time"

	"social_feed/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

// 开发环境演示数据：三个用户、两个帖子、一棵两层评论树和若干点赞
func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := "postgres://" + cfg.User + ":" + cfg.Password + "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.DBName + "?sslmode=" + cfg.SSLMode

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	users := map[string]string{
		"alice": uuid.New().String(),
		"bob":   uuid.New().String(),
		"carol": uuid.New().String(),
	}
	for name, id := range users {
		db.MustExec(`INSERT INTO users (id, username, password) VALUES ($1, $2, $3)
			ON CONFLICT (username) DO NOTHING`, id, name, string(hash))
	}

	postID := uuid.New().String()
	db.MustExec(`INSERT INTO posts (id, author_id, content) VALUES ($1, $2, $3)`,
		postID, users["alice"], "Hello from the seeded feed")

	oldPostID := uuid.New().String()
	db.MustExec(`INSERT INTO posts (id, author_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		oldPostID, users["bob"], "An older post, likes on it fall outside the karma window",
		time.Now().Add(-48*time.Hour))

	topCommentID := uuid.New().String()
	db.MustExec(`INSERT INTO comments (id, post_id, author_id, content) VALUES ($1, $2, $3, $4)`,
		topCommentID, postID, users["bob"], "First!")
	db.MustExec(`INSERT INTO comments (id, post_id, author_id, parent_id, content) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), postID, users["carol"], topCommentID, "Replying to the first comment")

	// 窗口内的帖子赞和评论赞各一，外加一条已过期的赞
	db.MustExec(`INSERT INTO likes (id, user_id, post_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), users["bob"], postID)
	db.MustExec(`INSERT INTO likes (id, user_id, comment_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), users["alice"], topCommentID)
	db.MustExec(`INSERT INTO likes (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), users["carol"], oldPostID, time.Now().Add(-25*time.Hour))

	log.Println("Seed data inserted")
}
