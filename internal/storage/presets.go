package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/plan"
)

// ParsePreset decodes a preset definition and builds its plan.
func ParsePreset(tomlData []byte) (*models.Preset, error) {
	var def models.PresetTOML
	if err := toml.Unmarshal(tomlData, &def); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}

	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, fmt.Errorf("preset name not specified")
	}

	mode := models.ModeTabata
	if def.Mode != "" {
		m, err := models.ParseMode(def.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	in := plan.Inputs{}
	for field, v := range map[string]*float64{
		plan.FieldPrep:     def.Prep,
		plan.FieldWork:     def.Work,
		plan.FieldRest:     def.Rest,
		plan.FieldRounds:   def.Rounds,
		plan.FieldCycles:   def.Cycles,
		plan.FieldLongRest: def.LongRest,
	} {
		if v != nil {
			in[field] = *v
		}
	}

	return &models.Preset{
		Name:        name,
		Description: def.Description,
		Mode:        mode,
		Totals:      plan.Build(mode, in),
	}, nil
}

// CreatePreset stores the preset described by tomlData, replacing any preset
// with the same name.
func (s *Storage) CreatePreset(tomlData []byte) (*models.Preset, error) {
	p, err := ParsePreset(tomlData)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presets WHERE name = ? COLLATE NOCASE`, p.Name); err != nil {
		return nil, fmt.Errorf("failed to replace preset: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO presets
         (id, name, description, mode, prep, work, rest, rounds, cycles, longrest, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.Description,
		string(p.Mode),
		p.Totals.Prep,
		p.Totals.Work,
		p.Totals.Rest,
		p.Totals.Rounds,
		p.Totals.Cycles,
		p.Totals.LongRest,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit preset: %w", err)
	}
	return p, nil
}

const presetColumns = `id, name, description, mode, prep, work, rest, rounds, cycles, longrest, created_at`

func scanPreset(row rowScanner) (*models.Preset, error) {
	var (
		p           models.Preset
		description sql.NullString
		mode        string
		createdAt   string
	)
	err := row.Scan(
		&p.ID, &p.Name, &description, &mode,
		&p.Totals.Prep, &p.Totals.Work, &p.Totals.Rest,
		&p.Totals.Rounds, &p.Totals.Cycles, &p.Totals.LongRest,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Mode = models.Mode(mode)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func (s *Storage) GetPresets() ([]*models.Preset, error) {
	rows, err := s.DB.Query(`SELECT ` + presetColumns + ` FROM presets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []*models.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// GetPresetByName looks a preset up case insensitively.
func (s *Storage) GetPresetByName(name string) (*models.Preset, error) {
	row := s.DB.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE name = ? COLLATE NOCASE`, name)
	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preset %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return p, nil
}

func (s *Storage) DeletePresetByName(name string) error {
	exists, err := s.PresetExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	if _, err := s.DB.Exec(`DELETE FROM presets WHERE name = ? COLLATE NOCASE`, name); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return nil
}
