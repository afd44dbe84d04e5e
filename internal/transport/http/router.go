package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-catalog-service/internal/service"
	"github.com/pribylovaa/go-catalog-service/internal/transport/http/handlers"
	"github.com/pribylovaa/go-catalog-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.CORS(),               // разрешающая политика для браузерных клиентов
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Чтение каталога открыто; мутации и /auth/me проходят шлюз доступа.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// auth
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.LoginUser)
	r.Post("/auth/refresh", h.RefreshToken)

	// products: публичное чтение
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProductByID)

	// защищённые маршруты
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Authenticate(svc))

		pr.Get("/auth/me", h.Me)

		pr.Post("/products", h.CreateProduct)
		pr.Put("/products/{id}", h.UpdateProduct)
		pr.Delete("/products/{id}", h.DeleteProduct)
	})
}
