package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

func (s *Storage) PresetExists(name string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM presets WHERE name = ? COLLATE NOCASE)",
		name,
	).Scan(&exists)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to check preset existence: %w", err)
	}

	return exists, nil
}

func (s *Storage) WorkoutExists(id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM workouts WHERE id = ?)",
		id,
	).Scan(&exists)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to check workout existence: %w", err)
	}

	return exists, nil
}
