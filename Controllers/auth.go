package Controllers

import (
	"Meghna/Models"
	"Meghna/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the credentials and sets the JWT cookie. The token carries
// the user id as its issuer and expires after 24 hours.
func Login(ctx *fiber.Ctx) error {
	var input LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.Username = strings.TrimSpace(input.Username)

	var user Models.User
	if err := Models.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid username or password",
		})
	}
	if !user.CheckPassword(input.Password) {
		logrus.WithField("username", input.Username).Warn("failed login attempt")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid username or password",
		})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(middleware.SecretKey))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not login",
		})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})

	if err := Models.LogEvent(Models.DB, user.Username, "LOGIN", "User logged in."); err != nil {
		logrus.WithError(err).Warn("could not record login event")
	}

	return ctx.JSON(user)
}

// Logout clears the JWT cookie.
func Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

// User returns the signed-in user loaded by the Verify middleware.
func User(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals("user").(Models.User)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}
	return ctx.JSON(user)
}

type RegisterUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterUser creates an account. Administrator-only route.
func RegisterUser(ctx *fiber.Ctx) error {
	var input RegisterUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are mandatory",
		})
	}
	if input.Role != Models.RoleAdministrator {
		input.Role = Models.RoleUser
	}

	user := Models.User{Username: input.Username, Role: input.Role}
	if err := user.SetPassword(input.Password); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A user with this username already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.LogEvent(Models.DB, actorName(ctx), "USER_CREATE",
		"Created user "+user.Username+" with role "+user.Role+"."); err != nil {
		logrus.WithError(err).Warn("could not record user creation")
	}
	return ctx.Status(fiber.StatusCreated).JSON(user)
}

// FetchUsers lists every account. Administrator-only route.
func FetchUsers(ctx *fiber.Ctx) error {
	var users []Models.User
	if err := Models.DB.Order("username").Find(&users).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
	}
	return ctx.JSON(users)
}

type UpdateUserInput struct {
	ID       uint   `json:"id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUser resets a password and/or changes a role. Administrator-only.
func UpdateUser(ctx *fiber.Ctx) error {
	var input UpdateUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user Models.User
	if err := Models.DB.First(&user, input.ID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if input.Role == Models.RoleUser || input.Role == Models.RoleAdministrator {
		user.Role = input.Role
	}
	if err := Models.DB.Save(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.LogEvent(Models.DB, actorName(ctx), "USER_UPDATE",
		"Updated user "+user.Username+"."); err != nil {
		logrus.WithError(err).Warn("could not record user update")
	}
	return ctx.JSON(user)
}

// DeleteUser removes an account. The last administrator cannot be deleted.
func DeleteUser(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Query("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var user Models.User
	if err := Models.DB.First(&user, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if user.IsAdministrator() {
		var admins int64
		if err := Models.DB.Model(&Models.User{}).Where("role = ?", Models.RoleAdministrator).Count(&admins).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if admins <= 1 {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Cannot delete the last administrator",
			})
		}
	}

	if err := Models.DB.Delete(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.LogEvent(Models.DB, actorName(ctx), "USER_DELETE",
		"Deleted user "+user.Username+"."); err != nil {
		logrus.WithError(err).Warn("could not record user deletion")
	}
	return ctx.JSON(fiber.Map{"message": "User deleted"})
}
