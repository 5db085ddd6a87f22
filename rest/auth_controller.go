package rest

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	inventory "github.com/goliatone/go-inventory"
)

// AuthController serves registration and login.
type AuthController struct {
	Auther inventory.Authenticator
	Users  inventory.Users
	Logger inventory.Logger
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Email,
				validation.Required,
				validation.Length(6, 100),
				is.Email,
			),
			validation.Field(
				&r.Password,
				validation.Required,
				validation.Length(8, 100),
			),
		)
	}, "Invalid registration payload")
}

// UserResponse is the public shape of a user record
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// NewUserResponse maps a stored user onto the response shape
func NewUserResponse(user *inventory.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse registration payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	hash, err := inventory.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	user, err := a.Users.Register(c.Context(), &inventory.User{
		Email:        payload.Email,
		PasswordHash: hash,
	})
	if err != nil {
		a.Logger.Error("user registration failed: %v", err)
		return err
	}

	a.Logger.Info("user registered id=%d", user.ID)

	return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Email,
				validation.Required,
				is.Email,
			),
			validation.Field(
				&r.Password,
				validation.Required,
			),
		)
	}, "Invalid login payload")
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	token, err := a.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{
		Token:     token,
		TokenType: "bearer",
	})
}
