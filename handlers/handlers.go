package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"shiftwrite/gemini"
	"shiftwrite/models"
	"shiftwrite/session"
	"shiftwrite/storage"
)

// Handler carries the dependencies of every route. Wiring them through a
// struct keeps the pipeline testable with in-memory stores and a fake
// generator.
type Handler struct {
	users     storage.UserStore
	history   storage.HistoryStore
	generator gemini.Generator
	sessions  *session.Manager
	jwtSecret []byte
	log       *zap.Logger
}

// New assembles a Handler.
func New(users storage.UserStore, history storage.HistoryStore, generator gemini.Generator, sessions *session.Manager, jwtSecret []byte, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		users:     users,
		history:   history,
		generator: generator,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// session returns the authenticated caller's session. The middleware
// guarantees userID is present on protected routes.
func (h *Handler) session(c *fiber.Ctx) (string, *session.Session) {
	userID, _ := c.Locals("userID").(string)
	return userID, h.sessions.For(userID)
}

func (h *Handler) createJWT(userID string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}
