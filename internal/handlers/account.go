package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func Register(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := accountService.Register(c.Request().Context(), params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func Login(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LoginParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		auth, err := accountService.Login(c.Request().Context(), params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "usuario": auth.User, "token": auth.Token})
	}
}

func Logout(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		if err := accountService.Logout(c.Request().Context(), userID); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}

// Confirm is opened from the mail link, so it answers with a redirect or plain text.
func Confirm(accountService AccountService, frontendURL string) echo.HandlerFunc {
	loginURL := strings.TrimRight(frontendURL, "/") + "/login.html?status=success"
	return func(c echo.Context) error {
		token := c.Param("token")
		if token == "" {
			token = c.QueryParam("token")
		}
		if token == "" {
			return c.String(http.StatusBadRequest, "Token de confirmação ausente.")
		}

		err := accountService.Confirm(c.Request().Context(), token)
		switch {
		case err == nil:
			return c.Redirect(http.StatusFound, loginURL)
		case errors.Is(err, model.ErrorInvalidOrUsedToken):
			return c.String(http.StatusBadRequest, "Erro: O link de confirmação é inválido ou já foi utilizado.")
		default:
			log.Errorf("confirming account: %+v", err)
			return c.String(http.StatusInternalServerError, "Erro interno do servidor ao confirmar a conta.")
		}
	}
}

func ResendConfirmation(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.ResendConfirmationParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		if err := accountService.ResendConfirmation(c.Request().Context(), params.Email); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}

func GetSessionKey(sessions SessionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, err := sessions.PublicJWK()
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, key)
	}
}
