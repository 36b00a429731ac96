package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/spdawson/bank-statement-parser/internal/models"
	"github.com/spdawson/bank-statement-parser/internal/parser"
	"github.com/spdawson/bank-statement-parser/internal/source"
	"github.com/spdawson/bank-statement-parser/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// maxUpload bounds request bodies, uploaded statements included.
const maxUpload = 32 << 20

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success      bool              `json:"success"`
	RequestID    string            `json:"requestId,omitempty"`
	Bank         string            `json:"bank,omitempty"`
	Format       string            `json:"format,omitempty"`
	Statement    *models.Statement `json:"statement,omitempty"`
	TotalPaidOut string            `json:"totalPaidOut,omitempty"`
	TotalPaidIn  string            `json:"totalPaidIn,omitempty"`
	Count        int               `json:"count"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId,omitempty"`
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Bank   models.BankType
	Logger *log.Logger
	Source *source.Reader
	// Clock is passed to every parser; nil means time.Now.
	Clock func() time.Time
}

// NewApp returns a fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "bank-statement-parser",
		BodyLimit:             maxUpload,
		DisableStartupMessage: true,
	})
	h.Register(app)
	return app
}

// Register sets up the routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Post("/parse", h.HandleParse)
}

func (h *Handler) logger() *log.Logger {
	if h.Logger == nil {
		return log.New(io.Discard)
	}
	return h.Logger
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleParse parses a statement sent either as a multipart "file" field or
// as the raw request body. The "bank" and "format" query or form values
// select the layout and the response encoding; format "json" (the default)
// wraps the statement in a ParseResponse, any other writer format is
// returned as-is.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	reqID := requestID(c)
	logger := h.logger().With("request_id", reqID)

	bank := c.FormValue("bank", string(h.Bank))
	if bank == "" {
		bank = string(models.BankHSBC)
	}
	format := strings.ToLower(c.FormValue("format", "json"))
	includeHeader := c.FormValue("header") != "false"

	input, err := h.input(c)
	if err != nil {
		return h.fail(c, reqID, err)
	}

	reader := h.Source
	if reader == nil {
		reader = source.New(source.WithLogger(logger))
	}
	text, err := reader.Read(c.UserContext(), input)
	if err != nil {
		return h.fail(c, reqID, err)
	}

	opts := []parser.Option{parser.WithLogger(logger)}
	if h.Clock != nil {
		opts = append(opts, parser.WithClock(h.Clock))
	}
	p, err := parser.New(models.BankType(strings.ToLower(bank)), opts...)
	if err != nil {
		return h.fail(c, reqID, err)
	}

	stmt, err := p.Parse(text)
	if err != nil {
		return h.fail(c, reqID, err)
	}
	logger.Info("parsed statement", "bank", stmt.Bank, "records", len(stmt.Records))

	if format == "json" {
		return c.JSON(ParseResponse{
			Success:      true,
			RequestID:    reqID,
			Bank:         string(stmt.Bank),
			Format:       stmt.Format.String(),
			Statement:    stmt,
			TotalPaidOut: stmt.TotalPaidOut().StringFixed(2),
			TotalPaidIn:  stmt.TotalPaidIn().StringFixed(2),
			Count:        len(stmt.Records),
		})
	}

	w, err := writer.New(format, includeHeader)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, reqID, err)
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, stmt); err != nil {
		return h.fail(c, reqID, err)
	}
	c.Set(fiber.HeaderContentType, contentTypes[format])
	return c.Send(buf.Bytes())
}

var contentTypes = map[string]string{
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"csv":  "text/csv; charset=utf-8",
	"pp":   fiber.MIMETextPlainCharsetUTF8,
}

// errNoInput is returned when a request carries neither a file nor a body.
var errNoInput = errors.New("no statement supplied, use form field 'file' or a text body")

// input returns the statement bytes sent with the request.
func (h *Handler) input(c *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errNoInput
		}
		if err := source.CheckName(fh.Filename); err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errNoInput
	}
	// The body buffer is reused by fasthttp once the handler returns.
	return bytes.Clone(body), nil
}

func (h *Handler) fail(c *fiber.Ctx, reqID string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		h.logger().Error("parse request failed", "request_id", reqID, "err", err)
	} else {
		h.logger().Warn("parse request rejected", "request_id", reqID, "status", status, "err", err)
	}
	return writeError(c, status, reqID, err)
}

// statusFor maps a failure to the HTTP status reported to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoInput), errors.Is(err, parser.ErrUnsupportedBank):
		return fiber.StatusBadRequest
	case errors.Is(err, source.ErrUnsupportedSource):
		return fiber.StatusUnsupportedMediaType
	case parser.Kind(err) != "", errors.Is(err, source.ErrUnreadable):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, reqID string, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		RequestID: reqID,
		Error:     err.Error(),
		Kind:      parser.Kind(err),
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
