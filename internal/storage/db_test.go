package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdobbymazz/fittrack/internal/config"
	"github.com/drdobbymazz/fittrack/internal/storage/db"
)

func TestDB(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	newUser := func(t *testing.T) uint64 {
		t.Helper()
		id, err := store.CreateUser(t.Context(), db.User{
			Username:     t.Name(),
			PasswordHash: []byte("hash"),
			Email:        t.Name() + "@example.com",
			FullName:     "Test User",
		})
		require.NoError(t, err)
		return id
	}

	addWorkout := func(ctx context.Context, t *testing.T, userID uint64, date string, minutes int64, exercises ...db.WorkoutExercise) uint64 {
		t.Helper()
		id, err := store.CreateWorkout(ctx, db.Workout{
			UserID:          userID,
			Date:            date,
			DurationMinutes: minutes,
			Notes:           "morning session",
		}, exercises)
		require.NoError(t, err)
		return id
	}

	t.Run("Users", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		user, err := store.GetUserByName(t.Context(), t.Name())
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, []byte("hash"), user.PasswordHash)

		_, err = store.CreateUser(t.Context(), db.User{
			Username:     t.Name(),
			PasswordHash: []byte("otherhash"),
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		_, err = store.GetUserByName(t.Context(), "nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeleteUserCascades", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		workoutID := addWorkout(t.Context(), t, userID, "2026-01-10", 30, db.WorkoutExercise{
			ExerciseTypeID: 1,
			CaloriesBurned: sql.NullInt64{Valid: true, Int64: 250},
		})

		require.NoError(t, store.DeleteUser(t.Context(), userID))

		_, err := store.GetUserByName(t.Context(), t.Name())
		require.ErrorIs(t, err, ErrNotFound)
		_, err = store.GetWorkout(t.Context(), userID, workoutID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("WorkoutDetail", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		workoutID := addWorkout(t.Context(), t, userID, "2026-02-01", 45,
			db.WorkoutExercise{
				ExerciseTypeID: 2, // Cycling
				DistanceKm:     sql.NullFloat64{Valid: true, Float64: 12.5},
				CaloriesBurned: sql.NullInt64{Valid: true, Int64: 320},
			},
			db.WorkoutExercise{
				ExerciseTypeID: 6, // Bench Press
				Sets:           sql.NullInt64{Valid: true, Int64: 3},
				Reps:           sql.NullInt64{Valid: true, Int64: 10},
				WeightKg:       sql.NullFloat64{Valid: true, Float64: 60},
			},
		)

		workout, err := store.GetWorkout(t.Context(), userID, workoutID)
		require.NoError(t, err)
		assert.Equal(t, "2026-02-01", workout.Date)
		assert.EqualValues(t, 45, workout.DurationMinutes)

		details, err := store.ListWorkoutExercises(t.Context(), userID, workoutID)
		require.NoError(t, err)
		require.Len(t, details, 2)
		assert.Equal(t, "Cycling", details[0].Name)
		assert.Equal(t, "Cardio", details[0].Category)
		assert.False(t, details[0].Sets.Valid)
		assert.Equal(t, "Bench Press", details[1].Name)
		assert.EqualValues(t, 3, details[1].Sets.Int64)
	})

	t.Run("Ownership", func(t *testing.T) {
		t.Parallel()

		owner, err := store.CreateUser(t.Context(), db.User{Username: t.Name() + "/owner", PasswordHash: []byte("hash")})
		require.NoError(t, err)
		other, err := store.CreateUser(t.Context(), db.User{Username: t.Name() + "/other", PasswordHash: []byte("hash")})
		require.NoError(t, err)

		workoutID := addWorkout(t.Context(), t, owner, "2026-03-01", 20)

		_, err = store.GetWorkout(t.Context(), other, workoutID)
		require.ErrorIs(t, err, ErrNotFound)

		details, err := store.ListWorkoutExercises(t.Context(), other, workoutID)
		require.NoError(t, err)
		assert.Empty(t, details)
	})

	t.Run("RecentWorkouts", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		for _, date := range []string{"2026-04-01", "2026-04-03", "2026-04-02"} {
			addWorkout(t.Context(), t, userID, date, 30, db.WorkoutExercise{
				ExerciseTypeID: 1,
				CaloriesBurned: sql.NullInt64{Valid: true, Int64: 100},
			})
		}

		recent, err := store.RecentWorkouts(t.Context(), userID, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "2026-04-03", recent[0].Date)
		assert.Equal(t, "2026-04-02", recent[1].Date)
		assert.EqualValues(t, 1, recent[0].ExerciseCount)
		assert.EqualValues(t, 100, recent[0].TotalCalories)
	})

	t.Run("Search", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		withRun := addWorkout(t.Context(), t, userID, "2026-05-01", 30, db.WorkoutExercise{
			ExerciseTypeID: 1, // Running
		})
		addWorkout(t.Context(), t, userID, "2026-05-02", 30, db.WorkoutExercise{
			ExerciseTypeID: 4, // Rowing
		})

		results, err := store.SearchWorkouts(t.Context(), userID, "Running")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, withRun, results[0].ID)
		assert.Equal(t, "Running", results[0].Exercises)

		// The date column is searchable text too.
		results, err = store.SearchWorkouts(t.Context(), userID, "2026-05")
		require.NoError(t, err)
		assert.Len(t, results, 2)

		results, err = store.SearchWorkouts(t.Context(), userID, "deadlift")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Stats", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)

		stats, err := store.LifetimeStats(t.Context(), userID)
		require.NoError(t, err)
		assert.Equal(t, db.LifetimeStats{}, stats)

		monthly, err := store.MonthlyStats(t.Context(), userID, 6)
		require.NoError(t, err)
		assert.Empty(t, monthly)

		addWorkout(t.Context(), t, userID, "2026-06-01", 30, db.WorkoutExercise{
			ExerciseTypeID: 1,
			CaloriesBurned: sql.NullInt64{Valid: true, Int64: 300},
		}, db.WorkoutExercise{
			ExerciseTypeID: 4,
			CaloriesBurned: sql.NullInt64{Valid: true, Int64: 150},
		})
		addWorkout(t.Context(), t, userID, "2026-06-15", 50, db.WorkoutExercise{
			ExerciseTypeID: 1,
			CaloriesBurned: sql.NullInt64{Valid: true, Int64: 400},
		})
		addWorkout(t.Context(), t, userID, "2026-07-02", 40)

		stats, err = store.LifetimeStats(t.Context(), userID)
		require.NoError(t, err)
		assert.Equal(t, db.LifetimeStats{
			TotalWorkouts: 3,
			TotalMinutes:  120,
			TotalCalories: 850,
		}, stats)

		monthly, err = store.MonthlyStats(t.Context(), userID, 6)
		require.NoError(t, err)
		require.Len(t, monthly, 2)
		assert.Equal(t, "2026-07", monthly[0].Month)
		assert.EqualValues(t, 1, monthly[0].WorkoutCount)
		assert.Equal(t, "2026-06", monthly[1].Month)
		assert.EqualValues(t, 80, monthly[1].TotalMinutes)
		assert.InDelta(t, 40.0, monthly[1].AvgDuration, 0.001)

		exercises, err := store.ExerciseStats(t.Context(), userID, 10)
		require.NoError(t, err)
		require.Len(t, exercises, 2)
		assert.Equal(t, "Running", exercises[0].Name)
		assert.EqualValues(t, 2, exercises[0].TimesPerformed)
		assert.EqualValues(t, 700, exercises[0].TotalCalories)
		assert.Equal(t, "Rowing", exercises[1].Name)
	})

	t.Run("Goals", func(t *testing.T) {
		t.Parallel()

		userID := newUser(t)
		goals, err := store.ListGoals(t.Context(), userID)
		require.NoError(t, err)
		assert.Empty(t, goals)

		goalID, err := store.CreateGoal(t.Context(), db.Goal{
			UserID:      userID,
			GoalType:    "weight_loss",
			TargetValue: 75,
			TargetDate:  "2026-12-31",
		})
		require.NoError(t, err)

		goals, err = store.ListGoals(t.Context(), userID)
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, goalID, goals[0].ID)
		assert.Equal(t, "weight_loss", goals[0].GoalType)
		assert.Zero(t, goals[0].CurrentValue)
	})

	t.Run("ExerciseTypes", func(t *testing.T) {
		t.Parallel()

		types, err := store.ListExerciseTypes(t.Context())
		require.NoError(t, err)
		require.NotEmpty(t, types)
		for _, et := range types {
			assert.NotEmpty(t, et.Name)
			assert.NotEmpty(t, et.Category)
		}
	})
}
