package main

import (
	"fmt"
	"net/http"
	"os"

	"organizer_server_go/controllers"
	"organizer_server_go/data"
	"organizer_server_go/middleware"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func main() {
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(log.DebugLevel)
	}

	// Инициализация баз данных
	if err := data.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router := mux.NewRouter()

	// Маршруты аутентификации (открытые)
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controllers.RegisterHandler).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", controllers.LoginHandler).Methods(http.MethodPost)

	// Маршрут для проверки состояния сервера (открытый, без JWT)
	router.HandleFunc("/api/Service/status", controllers.HealthCheck).Methods(http.MethodGet)

	// Подмаршрутизатор для /api, ко всем маршрутам применяется JWTMiddleware
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware)

	// Защищенный маршрут для обновления профиля пользователя
	apiRouter.HandleFunc("/auth/profile", controllers.UpdateProfileHandler).Methods(http.MethodPut)

	// Маршруты для досок
	boardsRouter := apiRouter.PathPrefix("/boards").Subrouter()
	boardsRouter.HandleFunc("", controllers.GetBoardsHandler).Methods(http.MethodGet)
	boardsRouter.HandleFunc("", controllers.CreateBoardHandler).Methods(http.MethodPost)
	boardsRouter.HandleFunc("/slug/{slug}", controllers.GetBoardBySlugHandler).Methods(http.MethodGet)
	boardsRouter.HandleFunc("/restore/{id:[0-9]+}", controllers.RestoreBoardHandler).Methods(http.MethodPost)
	boardsRouter.HandleFunc("/{id:[0-9]+}", controllers.UpdateBoardHandler).Methods(http.MethodPut)
	boardsRouter.HandleFunc("/{id:[0-9]+}", controllers.DeleteBoardHandler).Methods(http.MethodDelete)
	boardsRouter.HandleFunc("/{id:[0-9]+}/toggle-completion", controllers.ToggleBoardCompletionHandler).Methods(http.MethodPatch)

	// Элементы досок
	boardsRouter.HandleFunc("/{id:[0-9]+}/items", controllers.GetBoardItemsHandler).Methods(http.MethodGet)
	boardsRouter.HandleFunc("/{id:[0-9]+}/items", controllers.AddItemToBoardHandler).Methods(http.MethodPost)
	boardsRouter.HandleFunc("/{id:[0-9]+}/items/{itemId:[0-9]+}", controllers.RemoveItemFromBoardHandler).Methods(http.MethodDelete)

	// Обратный поиск: на каких досках находится элемент
	boardsRouter.HandleFunc("/items/{itemType}/{itemId:[0-9]+}/boards", controllers.GetItemBoardsHandler).Methods(http.MethodGet)

	// Маршруты для заметок
	memosRouter := apiRouter.PathPrefix("/memos").Subrouter()
	memosRouter.HandleFunc("", controllers.GetMemosHandler).Methods(http.MethodGet)
	memosRouter.HandleFunc("", controllers.CreateMemoHandler).Methods(http.MethodPost)
	memosRouter.HandleFunc("/restore/{id:[0-9]+}", controllers.RestoreMemoHandler).Methods(http.MethodPost)
	memosRouter.HandleFunc("/{id:[0-9]+}", controllers.GetMemoHandler).Methods(http.MethodGet)
	memosRouter.HandleFunc("/{id:[0-9]+}", controllers.UpdateMemoHandler).Methods(http.MethodPut)
	memosRouter.HandleFunc("/{id:[0-9]+}", controllers.DeleteMemoHandler).Methods(http.MethodDelete)

	// Маршруты для задач
	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	tasksRouter.HandleFunc("", controllers.GetTasksHandler).Methods(http.MethodGet)
	tasksRouter.HandleFunc("", controllers.CreateTaskHandler).Methods(http.MethodPost)
	tasksRouter.HandleFunc("/restore/{id:[0-9]+}", controllers.RestoreTaskHandler).Methods(http.MethodPost)
	tasksRouter.HandleFunc("/{id:[0-9]+}", controllers.GetTaskHandler).Methods(http.MethodGet)
	tasksRouter.HandleFunc("/{id:[0-9]+}", controllers.UpdateTaskHandler).Methods(http.MethodPut)
	tasksRouter.HandleFunc("/{id:[0-9]+}", controllers.DeleteTaskHandler).Methods(http.MethodDelete)

	// Базовый обработчик для проверки работы сервера
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Привет! Сервер OrganizerServerGO запущен. Используется gorilla/mux.")
	}).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Запуск сервера на порту :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
