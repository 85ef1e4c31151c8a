package main

import (
	"GameLibraryAPI/config"
	"GameLibraryAPI/config/server"
	"GameLibraryAPI/internal/apiresponse"
	"GameLibraryAPI/internal/handler"
	"GameLibraryAPI/internal/notifier"
	"GameLibraryAPI/internal/repository"
	"GameLibraryAPI/internal/security"
	"GameLibraryAPI/internal/service"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	_ "github.com/lib/pq"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(server.ConfigPath)
	if err != nil {
		log.Fatalf("не удалось загрузить конфигурацию: %v", err)
	}

	database, err := server.SetupDatabase()
	if err != nil {
		log.Fatalf("не удалось подключиться к БД: %v", err)
	}
	defer database.Close()

	httpServer, router := server.SetupServer()

	jwtService, err := security.NewJWTService(cfg.JWT)
	if err != nil {
		log.Fatalf("не удалось создать JWT сервис: %v", err)
	}

	webhookTimeout, _ := time.ParseDuration(cfg.Webhook.Timeout)
	reuseNotifier := notifier.NewWebhook(cfg.Webhook.URL, webhookTimeout)

	userRepository := repository.NewUserRepository(database)
	gameRepository := repository.NewGameRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)

	authenticationService := service.NewAuthenticationService(userRepository, jwtService)
	userService := service.NewUserService(userRepository)
	gameService := service.NewGameService(gameRepository)
	categoryService := service.NewCategoryService(categoryRepository)

	authenticationHandler := handler.NewAuthenticationHandler(authenticationService)
	userHandler := handler.NewUserHandler(userService)
	gameHandler := handler.NewGameHandler(gameService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	authMiddleware := security.NewAuthMiddleware(jwtService, userRepository, reuseNotifier)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		apiresponse.WriteNotFound(writer, "запрошенный ресурс не найден")
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		apiresponse.WriteError(writer, http.StatusMethodNotAllowed, "метод не поддерживается", nil)
	})

	router.Route("/api", func(r chi.Router) {
		// публичные маршруты аутентификации под фиксированным окном
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter(cfg.RateLimit))
			r.Post("/users/register", authenticationHandler.Register)
			r.Post("/users/login", authenticationHandler.Login)
			r.With(authMiddleware.VerifyRefreshToken).Post("/auth/refresh", authenticationHandler.Refresh)
		})

		// защищенные маршруты
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/users/logout", authenticationHandler.Logout)
			r.Get("/users/profile", userHandler.GetProfile)
			r.Put("/users/profile", userHandler.UpdateProfile)

			r.Post("/games", gameHandler.CreateGame)
			r.Get("/games", gameHandler.ListGames)
			r.Get("/games/{id}", gameHandler.GetGame)
			r.Put("/games/{id}", gameHandler.UpdateGame)
			r.Delete("/games/{id}", gameHandler.DeleteGame)
			r.Post("/games/{id}/categories", gameHandler.AddCategories)
			r.Delete("/games/{id}/categories/{categoryId}", gameHandler.RemoveCategory)

			r.Post("/categories", categoryHandler.CreateCategory)
			r.Put("/categories/{id}", categoryHandler.UpdateCategory)
			r.Delete("/categories/{id}", categoryHandler.DeleteCategory)
		})

		// публичные чтения и каталог с необязательной аутентификацией
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}", categoryHandler.GetCategory)
		r.With(authMiddleware.OptionalAuth).Get("/games/catalog", gameHandler.Catalog)
	})

	runServer(ctx, httpServer)
}

// rateLimiter строит фиксированное окно по IP из конфигурации
func rateLimiter(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	requests := cfg.Requests
	if requests <= 0 {
		requests = 10
	}

	window := time.Minute
	if cfg.Window != "" {
		parsed, err := time.ParseDuration(cfg.Window)
		if err != nil {
			log.Fatalf("неверное окно rate limit: %v", err)
		}
		window = parsed
	}

	return httprate.Limit(requests, window, httprate.WithKeyFuncs(httprate.KeyByIP))
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
