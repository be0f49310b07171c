package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func PostJournal(journalService JournalService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.CreateJournalPostParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := journalService.Post(c.Request().Context(), userID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func ListJournal(journalService JournalService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		posts, err := journalService.List(c.Request().Context(), model.UserID(userID))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
	}
}

func PostIdea(ideaService IdeaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.CreateIdeaParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := ideaService.Post(c.Request().Context(), userID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func ListIdeas(ideaService IdeaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var (
			ideas []*model.Idea
			err   error
		)
		if c.Param("userId") == "" {
			ideas, err = ideaService.List(c.Request().Context())
		} else {
			var userID int64
			if userID, err = paramID(c, "userId"); err != nil {
				return err
			}
			ideas, err = ideaService.ListByUser(c.Request().Context(), model.UserID(userID))
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "ideias": ideas})
	}
}

func PostConclusion(ideaService IdeaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateConclusionParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := ideaService.Conclude(c.Request().Context(), params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func ListConclusions(ideaService IdeaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		conclusions, err := ideaService.ListConclusions(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "conclusoes": conclusions})
	}
}

func GetConclusion(ideaService IdeaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		conclusion, err := ideaService.FindConclusion(c.Request().Context(), model.ConclusionID(id))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "conclusao": conclusion})
	}
}

func PostCommunity(communityService CommunityService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.CreateCommunityPostParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := communityService.Post(c.Request().Context(), userID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	}
}

func CommunityFeed(communityService CommunityService) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, err := queryLimit(c)
		if err != nil {
			return err
		}
		posts, err := communityService.Feed(c.Request().Context(), limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
	}
}

func Contact(contactService ContactService) echo.HandlerFunc {
	return func(c echo.Context) error {
		recruiterID, err := currentUser(c)
		if err != nil {
			return err
		}
		params := &model.ContactParams{}
		if err := bind(c, params); err != nil {
			return err
		}
		id, err := contactService.Contact(c.Request().Context(), recruiterID, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "contato_id": id})
	}
}

// ListContacts returns the messages recruiters sent to the caller.
func ListContacts(contactService ContactService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		contacts, err := contactService.List(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "contatos": contacts})
	}
}
