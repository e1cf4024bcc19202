// Package storage provides the state management for users, workouts, and
// goals.
//
// Every operation on owned records (workouts, exercises, goals) takes the
// requesting user's ID and applies it as a filter predicate inside the query
// itself; a record that exists but belongs to another user is
// indistinguishable from one that does not exist.
package storage

import (
	"context"

	"github.com/drdobbymazz/fittrack/internal/storage/db"
)

const (
	// ErrNotFound is returned when a record cannot be found, including when
	// it exists but is owned by a different user.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned when a unique record already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying user credential records.
type Users interface {
	// CreateUser inserts a new user, assigning its ID, and returns the
	// assigned ID. An [ErrAlreadyExists] error is returned if the username is
	// already in use, in which case nothing is written.
	CreateUser(ctx context.Context, user db.User) (uint64, error)
	// GetUserByName returns a single user with the specified username. An
	// [ErrNotFound] is returned if the username does not exist.
	GetUserByName(ctx context.Context, username string) (db.User, error)
	// DeleteUser removes a user and all their workouts, exercises, and goals.
	// Note that this is a hard delete; data is not recoverable.
	DeleteUser(ctx context.Context, userID uint64) error
}

// Workouts are the methods on a storage implementation that are responsible
// for workout records and their aggregates. All of them are scoped to the
// owning user.
type Workouts interface {
	// CreateWorkout inserts a workout and its exercise rows for the given
	// user and returns the workout ID.
	CreateWorkout(ctx context.Context, workout db.Workout, exercises []db.WorkoutExercise) (uint64, error)
	// GetWorkout returns a single workout by ID, restricted to the given
	// owner. An [ErrNotFound] is returned both for unknown IDs and for
	// workouts owned by another user.
	GetWorkout(ctx context.Context, userID, workoutID uint64) (db.Workout, error)
	// ListWorkoutExercises returns the exercise rows of an owner's workout
	// joined with the exercise catalog.
	ListWorkoutExercises(ctx context.Context, userID, workoutID uint64) ([]db.ExerciseDetail, error)
	// RecentWorkouts returns the owner's most recent workouts with
	// per-workout aggregates, newest first, up to limit records.
	RecentWorkouts(ctx context.Context, userID uint64, limit int64) ([]db.WorkoutSummary, error)
	// SearchWorkouts returns the owner's workouts whose notes, exercise
	// names, or date match the query, newest first.
	SearchWorkouts(ctx context.Context, userID uint64, query string) ([]db.SearchResult, error)
	// LifetimeStats returns whole-history aggregates for the owner.
	LifetimeStats(ctx context.Context, userID uint64) (db.LifetimeStats, error)
	// MonthlyStats returns per-month aggregates for the owner, most recent
	// month first, up to limit months.
	MonthlyStats(ctx context.Context, userID uint64, limit int64) ([]db.MonthlyStat, error)
	// ExerciseStats returns the owner's most performed exercises, up to limit
	// records.
	ExerciseStats(ctx context.Context, userID uint64, limit int64) ([]db.ExerciseStat, error)
}

// Goals are the methods on a storage implementation that are responsible for
// user goals.
type Goals interface {
	// CreateGoal inserts a goal for the given user and returns its ID.
	CreateGoal(ctx context.Context, goal db.Goal) (uint64, error)
	// ListGoals returns the owner's goals ordered by target date.
	ListGoals(ctx context.Context, userID uint64) ([]db.Goal, error)
}

// ExerciseTypes are the methods for reading the shared exercise catalog.
type ExerciseTypes interface {
	// ListExerciseTypes returns the full catalog ordered by category, then
	// name.
	ListExerciseTypes(ctx context.Context) ([]db.ExerciseType, error)
}

// Store is the combination interface for all storage concerns.
type Store interface {
	Users
	Workouts
	Goals
	ExerciseTypes
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
