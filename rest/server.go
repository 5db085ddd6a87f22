package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	inventory "github.com/goliatone/go-inventory"
)

// Server owns the fiber app and the wiring between HTTP routes and the core.
type Server struct {
	app     *fiber.App
	auther  inventory.Authenticator
	users   inventory.Users
	items   inventory.Items
	booking inventory.ItemStateMachine
	logger  inventory.Logger
}

type ServerOption func(*Server)

func WithLogger(logger inventory.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer builds the HTTP surface. Every route except login and register
// sits behind the bearer token middleware.
func NewServer(
	auther inventory.Authenticator,
	users inventory.Users,
	items inventory.Items,
	booking inventory.ItemStateMachine,
	opts ...ServerOption,
) *Server {
	s := &Server{
		auther:  auther,
		users:   users,
		items:   items,
		booking: booking,
		logger:  defaultLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	authCtrl := &AuthController{
		Auther: s.auther,
		Users:  s.users,
		Logger: s.logger,
	}

	itemsCtrl := &ItemsController{
		Items:   s.items,
		Booking: s.booking,
		Logger:  s.logger,
	}

	s.app.Post("/register", authCtrl.Register)
	s.app.Post("/login", authCtrl.Login)

	protected := s.app.Group("/items", RequireAuth(s.auther, s.logger))

	// book/return go first so the literal segment wins over :id
	protected.Patch("/book/:id", itemsCtrl.Book)
	protected.Patch("/return/:id", itemsCtrl.Return)

	protected.Get("/", itemsCtrl.List)
	protected.Post("/", itemsCtrl.Create)
	protected.Get("/:id", itemsCtrl.Show)
	protected.Put("/:id", itemsCtrl.Update)
	protected.Delete("/:id", itemsCtrl.Delete)
}

// errorHandler is the single choke point mapping core errors onto the HTTP
// taxonomy: 401 unauthorized, 403 forbidden, 404 not found, 409 conflict,
// 400 validation. Anything unclassified becomes a 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		status := richErr.Code
		if status < fiber.StatusBadRequest || status > 599 {
			status = categoryStatus(richErr.Category)
		}

		body := fiber.Map{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		}

		if validation := richErr.ValidationMap(); len(validation) > 0 {
			body["validation"] = validation
		}

		if status >= fiber.StatusInternalServerError {
			s.logger.Error("request failed: %v", err)
		}

		return c.Status(status).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	s.logger.Error("unhandled request error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

// categoryStatus backstops errors that carry a category but no explicit code.
func categoryStatus(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryBadInput, errors.CategoryValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

type defaultLogger struct{}

func (defaultLogger) Debug(format string, args ...any) { logf("[DBG]", format, args...) }
func (defaultLogger) Info(format string, args ...any)  { logf("[INF]", format, args...) }
func (defaultLogger) Warn(format string, args ...any)  { logf("[WRN]", format, args...) }
func (defaultLogger) Error(format string, args ...any) { logf("[ERR]", format, args...) }

func logf(level, format string, args ...any) {
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Printf(level+" REST "+format, args...)
}
