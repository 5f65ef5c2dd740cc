package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/utils"
)

const workoutColumns = `id, mode, preset_name, prep, work, rest, rounds, cycles, longrest,
        start_time, end_time, elapsed_seconds, total_seconds, completed, notes`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SaveWorkout inserts w, assigning an ID if it has none.
func (s *Storage) SaveWorkout(w *models.Workout) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}

	var endTime sql.NullString
	if w.EndTime != nil {
		endTime = sql.NullString{String: w.EndTime.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.DB.Exec(
		`INSERT INTO workouts (`+workoutColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID,
		string(w.Mode),
		w.PresetName,
		w.Totals.Prep,
		w.Totals.Work,
		w.Totals.Rest,
		w.Totals.Rounds,
		w.Totals.Cycles,
		w.Totals.LongRest,
		w.StartTime.UTC().Format(time.RFC3339),
		endTime,
		w.ElapsedSeconds,
		w.TotalSeconds,
		utils.BoolToInt(w.Completed),
		w.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save workout: %w", err)
	}
	return nil
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var (
		w          models.Workout
		mode       string
		presetName sql.NullString
		startTime  string
		endTime    sql.NullString
		completed  int
		notes      sql.NullString
	)
	err := row.Scan(
		&w.ID, &mode, &presetName,
		&w.Totals.Prep, &w.Totals.Work, &w.Totals.Rest,
		&w.Totals.Rounds, &w.Totals.Cycles, &w.Totals.LongRest,
		&startTime, &endTime,
		&w.ElapsedSeconds, &w.TotalSeconds, &completed, &notes,
	)
	if err != nil {
		return nil, err
	}

	w.Mode = models.Mode(mode)
	w.PresetName = presetName.String
	w.Notes = notes.String
	w.Completed = completed != 0
	w.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, fmt.Errorf("workout %s: bad start_time %q: %w", w.ID, startTime, err)
	}

	// Handle NULL end_time.
	if endTime.Valid {
		end, err := time.Parse(time.RFC3339, endTime.String)
		if err != nil {
			return nil, fmt.Errorf("workout %s: bad end_time %q: %w", w.ID, endTime.String, err)
		}
		w.EndTime = &end
	}

	return &w, nil
}

func (s *Storage) queryWorkouts(query string, args ...any) ([]*models.Workout, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// GetAllWorkouts returns every recorded workout, oldest first.
func (s *Storage) GetAllWorkouts() ([]*models.Workout, error) {
	workouts, err := s.queryWorkouts(`SELECT ` + workoutColumns + ` FROM workouts ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

// GetWorkoutsBetween returns workouts started within [start, end] inclusive of
// the whole end day.
func (s *Storage) GetWorkoutsBetween(start, end time.Time) ([]*models.Workout, error) {
	from := start.UTC().Format(time.RFC3339)
	to := end.AddDate(0, 0, 1).UTC().Format(time.RFC3339)
	workouts, err := s.queryWorkouts(
		`SELECT `+workoutColumns+` FROM workouts
         WHERE start_time >= ? AND start_time < ?
         ORDER BY start_time ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

func (s *Storage) GetWorkoutByID(id string) (*models.Workout, error) {
	row := s.DB.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return w, nil
}

func (s *Storage) DeleteWorkout(id string) error {
	res, err := s.DB.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Storage) SetWorkoutNotes(id, notes string) error {
	exists, err := s.WorkoutExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if _, err := s.DB.Exec(`UPDATE workouts SET notes = ? WHERE id = ?`, notes, id); err != nil {
		return fmt.Errorf("failed to update workout notes: %w", err)
	}
	return nil
}
