package db

import "database/sql"

// User is a credential record. The ID is generated once at creation and is
// the sole authorization key for owned records.
type User struct {
	ID           uint64
	Username     string
	PasswordHash []byte
	Email        string
	FullName     string
}

// ExerciseType is one entry of the shared exercise catalog.
type ExerciseType struct {
	ID       uint64
	Name     string
	Category string
}

// Workout is a single training session owned by a user. Date is an ISO
// yyyy-mm-dd string, matching the date form inputs.
type Workout struct {
	ID              uint64
	UserID          uint64
	Date            string
	DurationMinutes int64
	Notes           string
}

// WorkoutExercise is one exercise row inside a workout. The numeric fields
// are optional on the add-workout form and stay NULL when left blank.
type WorkoutExercise struct {
	ID             uint64
	WorkoutID      uint64
	ExerciseTypeID uint64
	Sets           sql.NullInt64
	Reps           sql.NullInt64
	WeightKg       sql.NullFloat64
	DistanceKm     sql.NullFloat64
	CaloriesBurned sql.NullInt64
}

// ExerciseDetail joins a workout exercise with its catalog entry for the
// workout detail page.
type ExerciseDetail struct {
	WorkoutExercise
	Name     string
	Category string
}

// WorkoutSummary is a workout with per-workout aggregates for the dashboard
// listing.
type WorkoutSummary struct {
	Workout
	ExerciseCount int64
	TotalCalories int64
}

// SearchResult is a workout matched by the search page, with the distinct
// exercise names joined into one display string.
type SearchResult struct {
	Workout
	Exercises string
}

// LifetimeStats are the dashboard whole-history aggregates. Zero values mean
// no recorded history.
type LifetimeStats struct {
	TotalWorkouts int64
	TotalMinutes  int64
	TotalCalories int64
}

// MonthlyStat is one month of workout aggregates for the statistics page.
// Month is formatted yyyy-mm.
type MonthlyStat struct {
	Month        string
	WorkoutCount int64
	TotalMinutes int64
	AvgDuration  float64
}

// ExerciseStat is the per-exercise breakdown for the statistics page.
type ExerciseStat struct {
	Name           string
	Category       string
	TimesPerformed int64
	TotalCalories  int64
}

// Goal is a user fitness goal. TargetDate is an ISO yyyy-mm-dd string.
type Goal struct {
	ID           uint64
	UserID       uint64
	GoalType     string
	TargetValue  float64
	CurrentValue float64
	TargetDate   string
}
