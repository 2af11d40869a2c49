package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// SettingsServiceImpl implements the SettingsService interface
type SettingsServiceImpl struct {
	settingsRepo settings.Repository
	logger       *slog.Logger
	mu           sync.Mutex // serializes load-modify-save
}

// NewSettingsService creates a new settings service
func NewSettingsService(logger *slog.Logger, settingsRepo settings.Repository) SettingsService {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.Settings, error) {
	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return settings.Settings{}, err
	}
	return cfg, nil
}

func (s *SettingsServiceImpl) AddCategory(ctx context.Context, name string) (settings.Settings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return settings.Settings{}, ValidationError{Field: "name", Message: "is required"}
	}

	return s.modify(ctx, "add_category", func(cfg settings.Settings) (settings.Settings, error) {
		updated, added := cfg.WithCategory(name)
		if !added {
			return cfg, settings.ErrCategoryExists
		}
		return updated, nil
	})
}

func (s *SettingsServiceImpl) RenameCategory(ctx context.Context, oldName, newName string) (settings.Settings, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return settings.Settings{}, ValidationError{Field: "name", Message: "is required"}
	}

	return s.modify(ctx, "rename_category", func(cfg settings.Settings) (settings.Settings, error) {
		return cfg.RenameCategory(oldName, newName)
	})
}

func (s *SettingsServiceImpl) RemoveCategory(ctx context.Context, name string) (bool, error) {
	_, err := s.modify(ctx, "remove_category", func(cfg settings.Settings) (settings.Settings, error) {
		updated, removed := cfg.WithoutCategory(name)
		if !removed {
			return cfg, settings.ErrCategoryNotFound
		}
		return updated, nil
	})
	if errors.Is(err, settings.ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetCategoryBudget sets a non-negative budget. Budgets for categories that are not
// configured are allowed and only logged.
func (s *SettingsServiceImpl) SetCategoryBudget(ctx context.Context, category string, monthlyBudget decimal.Decimal) (settings.Settings, error) {
	if strings.TrimSpace(category) == "" {
		return settings.Settings{}, ValidationError{Field: "category", Message: "is required"}
	}
	if monthlyBudget.IsNegative() {
		return settings.Settings{}, ValidationError{Field: "monthlyBudget", Message: "must not be negative"}
	}

	return s.modify(ctx, "set_budget", func(cfg settings.Settings) (settings.Settings, error) {
		if !cfg.HasCategory(category) {
			s.logger.Warn("Setting budget for a category that is not configured", "category", category)
		}
		return cfg.WithCategoryBudget(category, monthlyBudget), nil
	})
}

func (s *SettingsServiceImpl) SetCycleStartDay(ctx context.Context, day int) (settings.Settings, error) {
	if day < 1 || day > 31 {
		return settings.Settings{}, ValidationError{Field: "cycleStartDay", Message: "must be between 1 and 31"}
	}

	return s.modify(ctx, "set_cycle_start_day", func(cfg settings.Settings) (settings.Settings, error) {
		return cfg.WithCycleStartDay(day), nil
	})
}

// SetSavingsGoal validates and stores a goal. An empty priority defaults to medium.
func (s *SettingsServiceImpl) SetSavingsGoal(ctx context.Context, goal settings.SavingsGoal) (settings.Settings, error) {
	goal.Name = strings.TrimSpace(goal.Name)
	if goal.Name == "" {
		return settings.Settings{}, ValidationError{Field: "name", Message: "is required"}
	}
	if !goal.Target.IsPositive() {
		return settings.Settings{}, ValidationError{Field: "target", Message: "must be positive"}
	}
	if goal.Priority == "" {
		goal.Priority = settings.PriorityMedium
	}
	if !goal.Priority.Valid() {
		return settings.Settings{}, ValidationError{Field: "priority", Message: "must be one of low, medium, high"}
	}

	return s.modify(ctx, "set_savings_goal", func(cfg settings.Settings) (settings.Settings, error) {
		return cfg.WithSavingsGoal(goal), nil
	})
}

func (s *SettingsServiceImpl) RemoveSavingsGoal(ctx context.Context, name string) (bool, error) {
	var removed bool
	_, err := s.modify(ctx, "remove_savings_goal", func(cfg settings.Settings) (settings.Settings, error) {
		var updated settings.Settings
		updated, removed = cfg.WithoutSavingsGoal(name)
		return updated, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// modify loads the settings, applies fn and saves the result. Nothing is saved when
// fn returns an error.
func (s *SettingsServiceImpl) modify(ctx context.Context, op string, fn func(settings.Settings) (settings.Settings, error)) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "operation", op, "error", err)
		return settings.Settings{}, err
	}

	updated, err := fn(cfg)
	if err != nil {
		s.logger.Info("Settings change rejected", "operation", op, "reason", err.Error())
		return settings.Settings{}, err
	}

	if err := s.settingsRepo.Save(ctx, updated); err != nil {
		s.logger.Error("Failed to save settings", "operation", op, "error", err)
		return settings.Settings{}, err
	}

	s.logger.Info("Settings updated", "operation", op)
	return updated, nil
}
