package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shiftwrite/models"
	"shiftwrite/session"
	"shiftwrite/storage"
)

// abandonAuth resolves a failed attempt and drops the anonymous session so
// the manager does not accumulate one entry per attempted email.
func (h *Handler) abandonAuth(anon *session.Session, email string) {
	anon.EndAuth("")
	h.sessions.ForgetAnonymous(email)
}

// HandleRegister creates an account and signs the new user in.
// POST /api/v1/auth/register
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (email, password)")
	}

	anon := h.sessions.Anonymous(req.Email)
	if err := anon.BeginAuth(); err != nil {
		return errorJSON(c, fiber.StatusConflict, session.ErrAuthInFlight.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.abandonAuth(anon, req.Email)
		h.log.Error("hashing password", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not process password")
	}

	user, err := h.users.CreateUser(context.Background(), req.Email, string(hashedPassword))
	if err != nil {
		h.abandonAuth(anon, req.Email)
		if errors.Is(err, storage.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "Email is already registered")
		}
		h.log.Error("creating user", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create account")
	}

	token, err := h.createJWT(user.ID)
	if err != nil {
		h.abandonAuth(anon, req.Email)
		h.log.Error("signing token", zap.String("userID", user.ID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	anon.EndAuth(user.ID)
	h.sessions.ForgetAnonymous(req.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"accessToken": token, "user": user})
}

// HandleLogin verifies credentials and returns a JWT.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (email, password)")
	}

	anon := h.sessions.Anonymous(req.Email)
	if err := anon.BeginAuth(); err != nil {
		return errorJSON(c, fiber.StatusConflict, session.ErrAuthInFlight.Error())
	}

	user, passwordHash, err := h.users.GetUserByEmail(context.Background(), req.Email)
	if err != nil {
		h.abandonAuth(anon, req.Email)
		if errors.Is(err, storage.ErrNotFound) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		h.log.Error("fetching user", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		h.abandonAuth(anon, req.Email)
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.createJWT(user.ID)
	if err != nil {
		h.abandonAuth(anon, req.Email)
		h.log.Error("signing token", zap.String("userID", user.ID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	anon.EndAuth(user.ID)
	h.sessions.ForgetAnonymous(req.Email)

	return c.JSON(fiber.Map{"accessToken": token, "user": user})
}

// HandleLogout ends the server-side session. In-memory artifacts are
// cleared; persisted history is untouched. Always succeeds.
// POST /api/v1/auth/logout
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	h.sessions.Drop(userID)
	return c.JSON(fiber.Map{"status": "success"})
}
