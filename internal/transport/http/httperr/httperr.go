// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает доменную ошибку сервиса/хранилища, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Политика: все неопознанные ошибки (БД, криптография) схлопываются в
// 500/internal; текст исходной ошибки логируется на сервере и не
// пересекает границу процесса.
package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/go-catalog-service/internal/pkg/log"
	"github.com/pribylovaa/go-catalog-service/internal/service"
	"github.com/pribylovaa/go-catalog-service/internal/storage"
)

// ErrUnauthenticated — bearer-токен отсутствует или дефектен.
// Сообщение одно на оба случая (анти-перечисление).
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrBadRequest — тело запроса не распарсилось или параметр пути некорректен.
var ErrBadRequest = errors.New("invalid request body")

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - известные доменные ошибки маппятся по таблице ниже;
//   - всё прочее — 500/internal без утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return internal()
	}

	switch {
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrProductFields),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, response("bad_request", err)

	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, response("unauthenticated", err)

	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, response("not_found", err)

	default:
		return internal()
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
// Детали 500-х уходят только в серверный лог.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if status == http.StatusInternalServerError && err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "internal_error",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}

	// Прокидываем request_id для клиента, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// response раскрывает текст только известных доменных ошибок:
// из цепочки берётся последняя (корневая) ошибка без op-префиксов.
func response(code string, err error) ErrorResponse {
	root := err
	for {
		unwrapped := errors.Unwrap(root)
		if unwrapped == nil {
			break
		}
		root = unwrapped
	}

	return ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: root.Error(),
		},
	}
}

func internal() (int, ErrorResponse) {
	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}
