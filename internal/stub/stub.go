// Package stub serves a local stand-in for the scoring service. It accepts the
// same multipart request as the real endpoint and always answers with a fixed
// analysis result.
package stub

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/credexa/credexa-cli/internal/analysis"
	"github.com/credexa/credexa-cli/internal/analyzer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const DefaultListen = ":5000"

//go:embed fixture.json
var defaultFixture []byte

type Server struct {
	app     *fiber.App
	logger  *zap.Logger
	fixture []byte
}

// LoadFixture reads a result fixture from path. An empty path returns the
// built-in fixture. The fixture must match the result schema.
func LoadFixture(path string) ([]byte, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
	}

	if err := analysis.ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("fixture %q: %w", path, err)
	}
	if _, err := analysis.Decode(data); err != nil {
		return nil, fmt.Errorf("fixture %q: %w", path, err)
	}

	return data, nil
}

func New(fixture []byte, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fixture == nil {
		fixture = defaultFixture
	}

	s := &Server{
		logger:  logger,
		fixture: fixture,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "credexa-stub",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(s.logRequest)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	s.app.Post(analyzer.AnalyzePath, s.handleAnalyze)

	return s
}

// App exposes the fiber app for in-process requests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = DefaultListen
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve runs the app on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("stub service listening", zap.String("addr", ln.Addr().String()))
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	jd := c.FormValue("jd")
	if strings.TrimSpace(jd) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job description is required",
		})
	}

	s.logger.Debug("analysis requested",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
		zap.Int("jd_length", len(jd)),
		zap.String("request_id", c.Get("X-Request-ID")),
	)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(s.fixture)
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info("request served",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
