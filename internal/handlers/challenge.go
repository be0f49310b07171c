package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Identificador inválido")
	}
	return id, nil
}

func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Limite inválido")
	}
	return limit, nil
}

func PostChallenge(challengeService ChallengeService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.CreateChallengeParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := challengeService.PostChallenge(c.Request().Context(), userID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func ListChallenges(challengeService ChallengeService) echo.HandlerFunc {
	return func(c echo.Context) error {
		challenges, err := challengeService.ListChallenges(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "desafios": challenges})
	}
}

func SubmitActivity(challengeService ChallengeService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.SubmitParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := challengeService.Submit(c.Request().Context(), userID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"success":      true,
			"message":      "Atividade submetida com sucesso",
			"atividade_id": id,
		})
	}
}

func ListActivities(challengeService ChallengeService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		activities, err := challengeService.ListActivities(c.Request().Context(), model.UserID(userID))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "atividades": activities})
	}
}
