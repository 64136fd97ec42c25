package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

const (
	StrategyAuto  = "auto"
	StrategyGoose = "goose"
)

// GooseDialect maps a configured database driver to its goose dialect and
// embedded script directory.
func GooseDialect(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migration scripts for driver %q", driver)
	}
}

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy by name. An empty name means auto.
func NewManager(strategyName, driver string, log logger.Interface) (*Manager, error) {
	switch strings.ToLower(strategyName) {
	case "", StrategyAuto:
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log), log), nil
	case StrategyGoose:
		dialect, err := GooseDialect(driver)
		if err != nil {
			return nil, err
		}
		return NewManagerWithStrategy(NewGooseStrategy(dialect, log), log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log,
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
