package handlers

import (
	"github.com/labstack/echo/v4"
)

type Services struct {
	Account     AccountService
	Challenge   ChallengeService
	Ranking     RankingService
	Journal     JournalService
	Idea        IdeaService
	Community   CommunityService
	Contact     ContactService
	Profile     ProfileService
	Sessions    SessionService
	AdminKey    string
	FrontendURL string
}

// Mount installs the binder, validator, error handler and every /api route on server.
func Mount(server *echo.Echo, services *Services) {
	server.Binder = &Binder{}
	server.Validator = NewValidator()
	server.HTTPErrorHandler = ErrorHandler

	auth := RequireSession(services.Sessions)
	api := server.Group("/api")

	api.POST("/registrar", Register(services.Account))
	api.POST("/login", Login(services.Account))
	api.POST("/logout", Logout(services.Account), auth)
	api.GET("/confirmar", Confirm(services.Account, services.FrontendURL))
	api.GET("/confirmar/:token", Confirm(services.Account, services.FrontendURL))
	api.POST("/confirmar/reenviar", ResendConfirmation(services.Account))
	api.GET("/sessao/chave", GetSessionKey(services.Sessions))

	api.GET("/ranking", GetRanking(services.Ranking))
	api.POST("/ranking/pontos", AdjustScore(services.Ranking), RequireAdminKey(services.AdminKey))
	api.GET("/perfil/:id", GetProfile(services.Profile))

	api.POST("/desafios", PostChallenge(services.Challenge), auth)
	api.GET("/desafios", ListChallenges(services.Challenge))
	api.POST("/atividades/submeter", SubmitActivity(services.Challenge), auth)
	api.GET("/atividades/:userId", ListActivities(services.Challenge))

	api.POST("/diario", PostJournal(services.Journal), auth)
	api.GET("/diario/:id", ListJournal(services.Journal))

	api.POST("/ideias", PostIdea(services.Idea), auth)
	api.GET("/ideias", ListIdeas(services.Idea))
	api.GET("/ideias/:userId", ListIdeas(services.Idea))
	api.POST("/conclusoes", PostConclusion(services.Idea), auth)
	api.GET("/conclusoes", ListConclusions(services.Idea))
	api.GET("/conclusoes/:id", GetConclusion(services.Idea))

	api.POST("/comunidade", PostCommunity(services.Community), auth)
	api.GET("/comunidade", CommunityFeed(services.Community))

	api.POST("/contato", Contact(services.Contact), auth)
	api.GET("/contato", ListContacts(services.Contact), auth)
}
