package main

import (
	"flag"
	"log"
	"os"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/domain/entity"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/pkg/database"
)

// Creates an API user. Passwords are hashed by the entity's BeforeSave hook.
func main() {
	username := flag.String("username", "", "login name (required)")
	email := flag.String("email", "", "email address (required)")
	password := flag.String("password", "", "plaintext password (required)")
	admin := flag.Bool("admin", false, "grant admin rights")
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	userRepo := pgRepo.NewUserRepo(db)
	user := &entity.User{
		Username: *username,
		Email:    *email,
		Password: *password,
		IsAdmin:  *admin,
	}
	if err := userRepo.Create(user); err != nil {
		log.Printf("Failed to create user: %v", err)
		os.Exit(1)
	}

	log.Printf("Created user %s (%s), admin=%t, id=%s", user.Username, user.Email, user.IsAdmin, user.ID)
}
