package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/internal/media"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const messageInternal = "Erro interno"

var errorResponses = []struct {
	err     error
	code    int
	message string
}{
	{model.ErrorMissingFields, http.StatusBadRequest, "Faltando campos"},
	{model.ErrorWeakPassword, http.StatusBadRequest, "A senha precisa de 8 caracteres com maiúscula, minúscula, número e símbolo"},
	{model.ErrorDuplicateEmail, http.StatusBadRequest, "Email já cadastrado"},
	{model.ErrorInvalidOrUsedToken, http.StatusBadRequest, "O link de confirmação é inválido ou já foi utilizado"},
	{model.ErrorNegativeScore, http.StatusBadRequest, "A pontuação não pode ficar negativa"},
	{media.ErrorInvalidImage, http.StatusBadRequest, "Imagem inválida"},
	{model.ErrorInvalidUsernameOrPassword, http.StatusUnauthorized, "Email ou senha incorretos"},
	{model.ErrorInvalidSession, http.StatusUnauthorized, "Sessão inválida ou expirada"},
	{model.ErrorAccountNotConfirmed, http.StatusForbidden, "Conta não confirmada. Verifique seu email"},
	{model.ErrorForbidden, http.StatusForbidden, "Acesso negado"},
	{model.ErrorUserNotFound, http.StatusNotFound, "Usuário não encontrado"},
	{model.ErrorChallengeNotFound, http.StatusNotFound, "Desafio não encontrado"},
	{model.ErrorIdeaNotFound, http.StatusNotFound, "Ideia não encontrada"},
	{model.ErrorConclusionNotFound, http.StatusNotFound, "Conclusão não encontrada"},
	{model.ErrorDuplicateSubmission, http.StatusConflict, "Desafio já submetido"},
}

func classify(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field())
		}
		return http.StatusBadRequest, "Faltando campos ou campos inválidos: " + strings.Join(fields, ", ")
	}

	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			return r.code, r.message
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, messageInternal
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	return http.StatusInternalServerError, messageInternal
}

// ErrorHandler writes every failure as {success:false, error}. Server side errors are logged
// with the request id and replaced by a generic message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := classify(err)
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if code >= http.StatusInternalServerError {
		log.Errorf("request %s %s %s: %+v", requestID, c.Request().Method, c.Path(), err)
	} else {
		log.Debugf("request %s %s %s: %v", requestID, c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"success": false, "error": message})
	}
	if err != nil {
		log.Errorf("writing error response: %v", err)
	}
}
