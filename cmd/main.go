package main

import (
	"advisorlink/backend/internal/api/handler"
	"advisorlink/backend/internal/chat"
	"advisorlink/backend/internal/localization"
	"advisorlink/backend/internal/models"
	"advisorlink/backend/internal/storage"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "advisorlinkdb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: "",
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.Message{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Частковий унікальний індекс: не більше одного АКТИВНОГО чату на пару.
	// GORM-теги не вміють WHERE-індекси, тому raw SQL.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_chat_pair
        ON chats (student_id, advisor_id) WHERE is_active`).Error
	if err != nil {
		log.Fatalf("Failed to create active-chat-pair index: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting AdvisorLink Backend...")

	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Часовий пояс для wall-clock розкладу зустрічей
	loc, err := time.LoadLocation(envOr("CAMPUS_TZ", "Local"))
	if err != nil {
		log.Fatalf("Failed to load campus timezone: %v", err)
	}

	chatService := chat.NewService(s, loc)

	localizer, err := localization.New(envOr("LOCALES_DIR", "locales"))
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(chatService, localizer, []byte(jwtSecret))

	// Роути
	r.POST("/token", h.IssueToken) // Dev-видача JWT за user_id

	authorized := r.Group("/", h.AuthRequired())
	authorized.GET("/chats", h.ListChats)
	authorized.POST("/chats", h.StartChat)
	authorized.GET("/chats/:id", h.GetChat)
	authorized.POST("/chats/:id/messages", h.SendMessage)
	authorized.POST("/chats/:id/close", h.CloseChat)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
