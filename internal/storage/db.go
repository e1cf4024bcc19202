package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"modernc.org/sqlite"

	"github.com/drdobbymazz/fittrack/internal/config"
	"github.com/drdobbymazz/fittrack/internal/storage/db"
)

// SQLITE_CONSTRAINT_UNIQUE, the extended result code for a violated UNIQUE
// constraint.
const sqliteConstraintUnique = 2067

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids *snowflake.Generator
	db  *sql.DB
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids: snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:  handle,
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (uint64, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`,
		user.Username,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return 0, ErrAlreadyExists
	}

	if user.ID == 0 {
		user.ID = d.ids.Next()
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, email, full_name)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.Email, user.FullName,
	)
	if isUniqueViolation(err) {
		// Lost the race between the existence check and the insert; the
		// unique index on username is the source of truth.
		return 0, ErrAlreadyExists
	} else if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

// GetUserByName satisfies the [Users] interface.
func (d *DB) GetUserByName(ctx context.Context, username string) (db.User, error) {
	var user db.User
	err := d.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, email, full_name
		 FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// DeleteUser satisfies the [Users] interface. Owned workouts, exercise rows,
// and goals go with the user via the schema's cascading foreign keys.
func (d *DB) DeleteUser(ctx context.Context, userID uint64) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}

// CreateWorkout satisfies the [Workouts] interface. The workout and its
// exercise rows are written in one transaction; a failed exercise insert
// rolls back the workout row too.
func (d *DB) CreateWorkout(ctx context.Context, workout db.Workout, exercises []db.WorkoutExercise) (uint64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if workout.ID == 0 {
		workout.ID = d.ids.Next()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO workouts (id, user_id, workout_date, duration_minutes, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		workout.ID, workout.UserID, workout.Date, workout.DurationMinutes, workout.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create workout: %w", err)
	}

	for _, ex := range exercises {
		if ex.ID == 0 {
			ex.ID = d.ids.Next()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workout_exercises
			 (id, workout_id, exercise_type_id, sets, reps, weight_kg, distance_km, calories_burned)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ex.ID, workout.ID, ex.ExerciseTypeID, ex.Sets, ex.Reps, ex.WeightKg, ex.DistanceKm, ex.CaloriesBurned,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to create workout exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit workout: %w", err)
	}
	return workout.ID, nil
}

// GetWorkout satisfies the [Workouts] interface. The owner predicate is part
// of the query; another user's workout scans as no rows at all.
func (d *DB) GetWorkout(ctx context.Context, userID, workoutID uint64) (db.Workout, error) {
	var w db.Workout
	err := d.db.QueryRowContext(ctx,
		`SELECT id, user_id, workout_date, duration_minutes, notes
		 FROM workouts WHERE id = ? AND user_id = ?`,
		workoutID, userID,
	).Scan(&w.ID, &w.UserID, &w.Date, &w.DurationMinutes, &w.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return w, ErrNotFound
	}
	return w, err
}

// ListWorkoutExercises satisfies the [Workouts] interface.
func (d *DB) ListWorkoutExercises(ctx context.Context, userID, workoutID uint64) ([]db.ExerciseDetail, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT we.id, we.workout_id, we.exercise_type_id,
		        we.sets, we.reps, we.weight_kg, we.distance_km, we.calories_burned,
		        et.name, et.category
		 FROM workout_exercises we
		 JOIN exercise_types et ON et.id = we.exercise_type_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.workout_id = ? AND w.user_id = ?
		 ORDER BY we.id`,
		workoutID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout exercises: %w", err)
	}
	defer rows.Close()

	var details []db.ExerciseDetail
	for rows.Next() {
		var ex db.ExerciseDetail
		err = rows.Scan(
			&ex.ID, &ex.WorkoutID, &ex.ExerciseTypeID,
			&ex.Sets, &ex.Reps, &ex.WeightKg, &ex.DistanceKm, &ex.CaloriesBurned,
			&ex.Name, &ex.Category,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, ex)
	}
	return details, rows.Err()
}

// RecentWorkouts satisfies the [Workouts] interface.
func (d *DB) RecentWorkouts(ctx context.Context, userID uint64, limit int64) ([]db.WorkoutSummary, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT w.id, w.user_id, w.workout_date, w.duration_minutes, w.notes,
		        COUNT(we.id), COALESCE(SUM(we.calories_burned), 0)
		 FROM workouts w
		 LEFT JOIN workout_exercises we ON we.workout_id = w.id
		 WHERE w.user_id = ?
		 GROUP BY w.id
		 ORDER BY w.workout_date DESC, w.id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent workouts: %w", err)
	}
	defer rows.Close()

	var summaries []db.WorkoutSummary
	for rows.Next() {
		var s db.WorkoutSummary
		err = rows.Scan(
			&s.ID, &s.UserID, &s.Date, &s.DurationMinutes, &s.Notes,
			&s.ExerciseCount, &s.TotalCalories,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SearchWorkouts satisfies the [Workouts] interface. The match is a
// case-insensitive substring over notes, exercise names, and the ISO date.
func (d *DB) SearchWorkouts(ctx context.Context, userID uint64, query string) ([]db.SearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := d.db.QueryContext(ctx,
		`SELECT w.id, w.user_id, w.workout_date, w.duration_minutes, w.notes,
		        COALESCE(GROUP_CONCAT(DISTINCT et.name), '')
		 FROM workouts w
		 LEFT JOIN workout_exercises we ON we.workout_id = w.id
		 LEFT JOIN exercise_types et ON et.id = we.exercise_type_id
		 WHERE w.user_id = ?
		   AND (w.notes LIKE ? OR et.name LIKE ? OR w.workout_date LIKE ?)
		 GROUP BY w.id
		 ORDER BY w.workout_date DESC, w.id DESC`,
		userID, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search workouts: %w", err)
	}
	defer rows.Close()

	var results []db.SearchResult
	for rows.Next() {
		var r db.SearchResult
		err = rows.Scan(&r.ID, &r.UserID, &r.Date, &r.DurationMinutes, &r.Notes, &r.Exercises)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LifetimeStats satisfies the [Workouts] interface.
func (d *DB) LifetimeStats(ctx context.Context, userID uint64) (db.LifetimeStats, error) {
	var stats db.LifetimeStats
	err := d.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM workouts WHERE user_id = ?),
		   (SELECT COALESCE(SUM(duration_minutes), 0) FROM workouts WHERE user_id = ?),
		   (SELECT COALESCE(SUM(we.calories_burned), 0)
		      FROM workout_exercises we
		      JOIN workouts w ON w.id = we.workout_id
		      WHERE w.user_id = ?)`,
		userID, userID, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalMinutes, &stats.TotalCalories)
	if err != nil {
		return stats, fmt.Errorf("failed to load lifetime stats: %w", err)
	}
	return stats, nil
}

// MonthlyStats satisfies the [Workouts] interface.
func (d *DB) MonthlyStats(ctx context.Context, userID uint64, limit int64) ([]db.MonthlyStat, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', workout_date) AS month,
		        COUNT(*), SUM(duration_minutes), AVG(duration_minutes)
		 FROM workouts
		 WHERE user_id = ?
		 GROUP BY month
		 ORDER BY month DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []db.MonthlyStat
	for rows.Next() {
		var s db.MonthlyStat
		if err = rows.Scan(&s.Month, &s.WorkoutCount, &s.TotalMinutes, &s.AvgDuration); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ExerciseStats satisfies the [Workouts] interface.
func (d *DB) ExerciseStats(ctx context.Context, userID uint64, limit int64) ([]db.ExerciseStat, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT et.name, et.category, COUNT(*), COALESCE(SUM(we.calories_burned), 0)
		 FROM workout_exercises we
		 JOIN exercise_types et ON et.id = we.exercise_type_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = ?
		 GROUP BY et.id
		 ORDER BY COUNT(*) DESC, et.name
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise stats: %w", err)
	}
	defer rows.Close()

	var stats []db.ExerciseStat
	for rows.Next() {
		var s db.ExerciseStat
		if err = rows.Scan(&s.Name, &s.Category, &s.TimesPerformed, &s.TotalCalories); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CreateGoal satisfies the [Goals] interface.
func (d *DB) CreateGoal(ctx context.Context, goal db.Goal) (uint64, error) {
	if goal.ID == 0 {
		goal.ID = d.ids.Next()
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO user_goals (id, user_id, goal_type, target_value, current_value, target_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.GoalType, goal.TargetValue, goal.CurrentValue, goal.TargetDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal.ID, nil
}

// ListGoals satisfies the [Goals] interface.
func (d *DB) ListGoals(ctx context.Context, userID uint64) ([]db.Goal, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, user_id, goal_type, target_value, current_value, target_date
		 FROM user_goals
		 WHERE user_id = ?
		 ORDER BY target_date, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []db.Goal
	for rows.Next() {
		var g db.Goal
		err = rows.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.CurrentValue, &g.TargetDate)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// ListExerciseTypes satisfies the [ExerciseTypes] interface.
func (d *DB) ListExerciseTypes(ctx context.Context) ([]db.ExerciseType, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, category FROM exercise_types ORDER BY category, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise types: %w", err)
	}
	defer rows.Close()

	var types []db.ExerciseType
	for rows.Next() {
		var et db.ExerciseType
		if err = rows.Scan(&et.ID, &et.Name, &et.Category); err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqliteConstraintUnique
}

var _ Store = (*DB)(nil)
