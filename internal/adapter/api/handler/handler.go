package handler

import (
	"nyayapath/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	caseHandler        *CaseHandler
	battleHandler      *BattleHandler
	progressionHandler *ProgressionHandler
	quizHandler        *QuizHandler
	figureHandler      *FigureHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	caseUseCase *usecase.CaseUseCase,
	battleUseCase *usecase.BattleUseCase,
	progressionUseCase *usecase.ProgressionUseCase,
	quizUseCase *usecase.QuizUseCase,
	figureChatUseCase *usecase.FigureChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	caseHandler = NewCaseHandler(caseUseCase)
	battleHandler = NewBattleHandler(battleUseCase)
	progressionHandler = NewProgressionHandler(progressionUseCase)
	quizHandler = NewQuizHandler(quizUseCase)
	figureHandler = NewFigureHandler(figureChatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCaseHandler() *CaseHandler {
	return caseHandler
}

func GetBattleHandler() *BattleHandler {
	return battleHandler
}

func GetProgressionHandler() *ProgressionHandler {
	return progressionHandler
}

func GetQuizHandler() *QuizHandler {
	return quizHandler
}

func GetFigureHandler() *FigureHandler {
	return figureHandler
}
