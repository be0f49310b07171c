package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func GetRanking(rankingService RankingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, err := queryLimit(c)
		if err != nil {
			return err
		}
		entries, err := rankingService.List(c.Request().Context(), limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "ranking": entries})
	}
}

func AdjustScore(rankingService RankingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.AdjustScoreParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		if err := rankingService.Adjust(c.Request().Context(), params); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}

func GetProfile(profileService ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		profile, err := profileService.Get(c.Request().Context(), model.UserID(userID))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "perfil": profile})
	}
}
