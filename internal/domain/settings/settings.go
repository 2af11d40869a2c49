// Package settings holds the user's ledger configuration: categories, the budget
// cycle start day, per-category budgets and savings goals. Every mutation returns a
// new Settings value and leaves the receiver untouched; persisting it is the caller's job.
package settings

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCycleStartDay is used when no cycle start day is configured
const DefaultCycleStartDay = 1

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// Priority ranks a savings goal
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CategoryBudget caps spending of one category per budget cycle
type CategoryBudget struct {
	Category      string          `json:"category"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

// SavingsGoal is a target tracked against the aggregate savings total
type SavingsGoal struct {
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Priority Priority        `json:"priority"`
	Deadline *time.Time      `json:"deadline,omitempty"` // calendar date, time part is zero
}

// Settings is the configuration consumed by the aggregators
type Settings struct {
	Categories      []string         `json:"categories"`
	CycleStartDay   int              `json:"cycleStartDay,omitempty"`
	CategoryBudgets []CategoryBudget `json:"categoryBudgets"`
	SavingsGoals    []SavingsGoal    `json:"savingsGoals"`
}

// EffectiveCycleStartDay returns the configured day, or the default when unset
func (s Settings) EffectiveCycleStartDay() int {
	if s.CycleStartDay == 0 {
		return DefaultCycleStartDay
	}
	return s.CycleStartDay
}

// HasCategory reports whether name is a configured category
func (s Settings) HasCategory(name string) bool {
	return slices.Contains(s.Categories, name)
}

// Budget returns the budget configured for category, or zero when none is set
func (s Settings) Budget(category string) decimal.Decimal {
	for _, b := range s.CategoryBudgets {
		if b.Category == category {
			return b.MonthlyBudget
		}
	}
	return decimal.Zero
}

// Goal looks up a savings goal by name
func (s Settings) Goal(name string) (SavingsGoal, bool) {
	for _, g := range s.SavingsGoals {
		if g.Name == name {
			return g, true
		}
	}
	return SavingsGoal{}, false
}

// WithCategory appends a category. The boolean is false when it already exists.
func (s Settings) WithCategory(name string) (Settings, bool) {
	if s.HasCategory(name) {
		return s, false
	}
	out := s.clone()
	out.Categories = append(out.Categories, name)
	return out, true
}

// RenameCategory renames a category in place, keeping its position
func (s Settings) RenameCategory(oldName, newName string) (Settings, error) {
	idx := slices.Index(s.Categories, oldName)
	if idx < 0 {
		return s, ErrCategoryNotFound
	}
	if s.HasCategory(newName) {
		return s, ErrCategoryExists
	}
	out := s.clone()
	out.Categories[idx] = newName
	return out, nil
}

// WithoutCategory removes a category. The boolean is false when it was not configured.
// Budgets for the category are kept; they are managed separately.
func (s Settings) WithoutCategory(name string) (Settings, bool) {
	if !s.HasCategory(name) {
		return s, false
	}
	out := s.clone()
	out.Categories = slices.DeleteFunc(out.Categories, func(c string) bool { return c == name })
	return out, true
}

// WithCategoryBudget sets the budget of a category, replacing an existing entry in
// place or appending a new one
func (s Settings) WithCategoryBudget(category string, monthlyBudget decimal.Decimal) Settings {
	out := s.clone()
	for i := range out.CategoryBudgets {
		if out.CategoryBudgets[i].Category == category {
			out.CategoryBudgets[i].MonthlyBudget = monthlyBudget
			return out
		}
	}
	out.CategoryBudgets = append(out.CategoryBudgets, CategoryBudget{Category: category, MonthlyBudget: monthlyBudget})
	return out
}

// WithCycleStartDay sets the day of month on which budget cycles start
func (s Settings) WithCycleStartDay(day int) Settings {
	out := s.clone()
	out.CycleStartDay = day
	return out
}

// WithSavingsGoal adds a goal, or replaces the goal with the same name at its position
func (s Settings) WithSavingsGoal(goal SavingsGoal) Settings {
	out := s.clone()
	for i := range out.SavingsGoals {
		if out.SavingsGoals[i].Name == goal.Name {
			out.SavingsGoals[i] = goal
			return out
		}
	}
	out.SavingsGoals = append(out.SavingsGoals, goal)
	return out
}

// WithoutSavingsGoal removes a goal by name. The boolean is false when no goal matched.
func (s Settings) WithoutSavingsGoal(name string) (Settings, bool) {
	if _, ok := s.Goal(name); !ok {
		return s, false
	}
	out := s.clone()
	out.SavingsGoals = slices.DeleteFunc(out.SavingsGoals, func(g SavingsGoal) bool { return g.Name == name })
	return out, true
}

func (s Settings) clone() Settings {
	return Settings{
		Categories:      slices.Clone(s.Categories),
		CycleStartDay:   s.CycleStartDay,
		CategoryBudgets: slices.Clone(s.CategoryBudgets),
		SavingsGoals:    slices.Clone(s.SavingsGoals),
	}
}
