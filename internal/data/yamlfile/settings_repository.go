// Package yamlfile persists ledger settings in the purse YAML config file.
package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/purse-ledger/internal/domain/settings"
	"github.com/purse-ledger/internal/platform/persistence"
)

const deadlineLayout = "2006-01-02"

// configDocument is the on-disk shape. Sections this service does not manage
// (database, display) are carried through unchanged on save.
type configDocument struct {
	Database   map[string]interface{} `yaml:"database,omitempty"`
	Display    map[string]interface{} `yaml:"display,omitempty"`
	Categories []string               `yaml:"categories"`
	Budget     *budgetSection         `yaml:"budget,omitempty"`
	Savings    *savingsSection        `yaml:"savings,omitempty"`
}

type budgetSection struct {
	CycleStartDay   int            `yaml:"cycleStartDay,omitempty"`
	CategoryBudgets []budgetRecord `yaml:"categoryBudgets,omitempty"`
}

type budgetRecord struct {
	Category      string  `yaml:"category"`
	MonthlyBudget float64 `yaml:"monthlyBudget"`
}

type savingsSection struct {
	Goals []goalRecord `yaml:"goals,omitempty"`
}

type goalRecord struct {
	Name     string  `yaml:"name"`
	Target   float64 `yaml:"target"`
	Priority string  `yaml:"priority"`
	Deadline string  `yaml:"deadline,omitempty"`
}

func (d configDocument) toSettings() (settings.Settings, error) {
	s := settings.Settings{Categories: d.Categories}
	if d.Budget != nil {
		s.CycleStartDay = d.Budget.CycleStartDay
		for _, b := range d.Budget.CategoryBudgets {
			s.CategoryBudgets = append(s.CategoryBudgets, settings.CategoryBudget{
				Category:      b.Category,
				MonthlyBudget: decimal.NewFromFloat(b.MonthlyBudget),
			})
		}
	}
	if d.Savings != nil {
		for _, g := range d.Savings.Goals {
			goal := settings.SavingsGoal{
				Name:     g.Name,
				Target:   decimal.NewFromFloat(g.Target),
				Priority: settings.Priority(g.Priority),
			}
			if g.Deadline != "" {
				deadline, err := time.Parse(deadlineLayout, g.Deadline)
				if err != nil {
					return settings.Settings{}, fmt.Errorf("goal %q has invalid deadline %q: %w", g.Name, g.Deadline, err)
				}
				goal.Deadline = &deadline
			}
			s.SavingsGoals = append(s.SavingsGoals, goal)
		}
	}
	return s, nil
}

func (d *configDocument) apply(s settings.Settings) {
	d.Categories = s.Categories
	if d.Categories == nil {
		d.Categories = []string{}
	}

	d.Budget = nil
	if s.CycleStartDay != 0 || len(s.CategoryBudgets) > 0 {
		d.Budget = &budgetSection{CycleStartDay: s.CycleStartDay}
		for _, b := range s.CategoryBudgets {
			d.Budget.CategoryBudgets = append(d.Budget.CategoryBudgets, budgetRecord{
				Category:      b.Category,
				MonthlyBudget: b.MonthlyBudget.InexactFloat64(),
			})
		}
	}

	d.Savings = nil
	if len(s.SavingsGoals) > 0 {
		d.Savings = &savingsSection{}
		for _, g := range s.SavingsGoals {
			rec := goalRecord{
				Name:     g.Name,
				Target:   g.Target.InexactFloat64(),
				Priority: string(g.Priority),
			}
			if g.Deadline != nil {
				rec.Deadline = g.Deadline.Format(deadlineLayout)
			}
			d.Savings.Goals = append(d.Savings.Goals, rec)
		}
	}
}

// SettingsRepository implements settings.Repository over a YAML file
type SettingsRepository struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewSettingsRepository creates a repository for the YAML file at path
func NewSettingsRepository(logger *slog.Logger, path string) *SettingsRepository {
	return &SettingsRepository{
		path:   path,
		logger: logger,
	}
}

// Load reads the settings. A missing file yields empty settings.
func (r *SettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	if err := ctx.Err(); err != nil {
		return settings.Settings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return settings.Settings{}, err
	}
	s, err := doc.toSettings()
	if err != nil {
		r.logger.Error("Settings file holds an invalid value", "path", r.path, "error", err)
		return settings.Settings{}, settings.ErrCorruptSettings{Source: r.path, Err: err}
	}
	return s, nil
}

// Save writes s, keeping any sections of the existing file it does not manage
func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	doc.apply(s)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := persistence.WriteFileAtomic(r.path, buf.Bytes(), 0o644); err != nil {
		r.logger.Error("Failed to save settings", "path", r.path, "error", err)
		return err
	}
	return nil
}

func (r *SettingsRepository) read() (configDocument, error) {
	var doc configDocument

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		r.logger.Error("Failed to read settings file", "path", r.path, "error", err)
		return doc, fmt.Errorf("failed to read settings file %s: %w", r.path, err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		r.logger.Error("Settings file is not valid YAML", "path", r.path, "error", err)
		return configDocument{}, settings.ErrCorruptSettings{Source: r.path, Err: err}
	}
	return doc, nil
}
