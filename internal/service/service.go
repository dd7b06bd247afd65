package service

import (
	"context"
	"errors"

	"github.com/Dan9191/finsight/internal/analytics"
	"github.com/Dan9191/finsight/internal/config"
	"github.com/Dan9191/finsight/internal/models"
	"github.com/Dan9191/finsight/internal/predict"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Store is the persistence the service depends on
type Store interface {
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	ListUsers() ([]models.User, error)

	CreateTransaction(tx *models.Transaction) error
	ImportStatement(stmt *models.Statement, txs []models.Transaction) error
	ListTransactions(userID int64) ([]models.Transaction, error)
	DeleteTransaction(userID, id int64) error
	ListStatements(userID int64) ([]models.Statement, error)
	DeleteStatement(userID, id int64) error

	CreateGoal(goal *models.Goal) error
	ListGoals(userID int64) ([]models.Goal, error)
	FindGoal(userID, id int64) (*models.Goal, error)
	UpdateGoalSaved(userID, id int64, saved float64) error
	DeleteGoal(userID, id int64) error
}

// RateSource provides the central bank key rate
type RateSource interface {
	GetKeyRate(ctx context.Context) (float64, error)
}

// Service handles business logic
type Service struct {
	store      Store
	engine     *analytics.Engine
	predictors predict.Bundle
	rates      RateSource
	log        *logrus.Logger
	config     *config.Config
}

// NewService initializes a new service
func NewService(store Store, engine *analytics.Engine, predictors predict.Bundle, rates RateSource, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:      store,
		engine:     engine,
		predictors: predictors,
		rates:      rates,
		log:        log,
		config:     cfg,
	}
}

func (s *Service) userLog(userID int64) *logrus.Entry {
	return s.log.WithField("user_id", userID)
}
