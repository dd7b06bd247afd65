package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

// Memory is an in-memory store with the same behavior as Repository. It
// backs the service when DB_CONN is "memory" and is used in tests.
type Memory struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*models.User
	txs        []models.Transaction
	goals      map[int64]*models.Goal
	statements map[int64]*models.Statement
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]*models.User),
		goals:      make(map[int64]*models.Goal),
		statements: make(map[int64]*models.Statement),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user %s: %w", user.Username, ErrConflict)
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *Memory) FindUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user: %w", ErrNotFound)
}

func (m *Memory) FindUserByID(id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *Memory) CreateTransaction(tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.ID = m.id()
	m.txs = append(m.txs, *tx)
	return nil
}

func (m *Memory) ImportStatement(stmt *models.Statement, txs []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stmt.ID = m.id()
	stmt.TransactionCount = len(txs)
	stmt.UploadedAt = time.Now().UTC().Format(time.RFC3339)
	stored := *stmt
	m.statements[stmt.ID] = &stored
	for _, tx := range txs {
		tx.ID = m.id()
		tx.StatementID = &stored.ID
		m.txs = append(m.txs, tx)
	}
	return nil
}

func (m *Memory) ListTransactions(userID int64) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Transaction{}
	for _, tx := range m.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) DeleteTransaction(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tx := range m.txs {
		if tx.ID == id && tx.UserID == userID {
			m.txs = append(m.txs[:i], m.txs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListStatements(userID int64) ([]models.Statement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Statement{}
	for _, s := range m.statements {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *Memory) DeleteStatement(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statements[id]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(m.statements, id)
	kept := m.txs[:0]
	for _, tx := range m.txs {
		if tx.StatementID == nil || *tx.StatementID != id {
			kept = append(kept, tx)
		}
	}
	m.txs = kept
	return nil
}

func (m *Memory) CreateGoal(goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal.ID = m.id()
	goal.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	stored := *goal
	m.goals[goal.ID] = &stored
	return nil
}

func (m *Memory) ListGoals(userID int64) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Goal{}
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) FindGoal(userID, id int64) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return nil, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	found := *g
	return &found, nil
}

func (m *Memory) UpdateGoalSaved(userID, id int64, saved float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return ErrNotFound
	}
	g.CurrentSaved = saved
	return nil
}

func (m *Memory) DeleteGoal(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}
