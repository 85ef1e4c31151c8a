package server

import (
	"GameLibraryAPI/internal"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

var (
	DbDriverName       string
	DbConnectionString string
	ServerAddress      string
	ConfigPath         string
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env не найден, используются переменные окружения")
	}

	DbDriverName = os.Getenv("DATABASE_DRIVER")
	DbConnectionString = os.Getenv("DATABASE_CONNECTION_URL")
	ServerAddress = os.Getenv("SERVER_ADDRESS")
	ConfigPath = os.Getenv("CONFIG_PATH")

	if DbDriverName == "" {
		DbDriverName = "postgres"
	}
	if ServerAddress == "" {
		ServerAddress = ":8080"
	}
	if ConfigPath == "" {
		ConfigPath = "config.yaml"
	}
}

func SetupDatabase() (*internal.Database, error) {
	database, err := internal.NewDatabaseConnection(DbDriverName, DbConnectionString)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения: %w", err)
	}

	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	return database, nil
}

func SetupServer() (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    ServerAddress,
		Handler: router,
	}

	return server, router
}
