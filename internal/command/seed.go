package command

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"github.com/drdobbymazz/fittrack/internal/sec"
	"github.com/drdobbymazz/fittrack/internal/storage"
	"github.com/drdobbymazz/fittrack/internal/storage/db"
)

const (
	seedWorkouts     = 30
	seedGoals        = 3
	seedHistoryDays  = 180
	seedMaxExercises = 3
)

var seedNotes = []string{
	"Felt strong today.",
	"Tough session, legs were heavy.",
	"**New PR!** Kept form clean throughout.",
	"Easy recovery day:\n\n- light pace\n- lots of stretching",
	"Cut it short, shoulder was acting up.",
	"",
}

var seedGoalTypes = []string{"weight_loss", "workout_frequency", "distance", "strength"}

func seedCommand() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with a demo account and sample data",
		Long: "Creates the demo user \"gold\" with sample workouts and goals. " +
			"Re-running against a database that already has the demo user fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64() //nolint:gosec // intentionally weak random for demo data
			}
			userID, err := seedDemoData(cmd.Context(), store, seed)
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "seeded demo data",
				slog.Uint64("user_id", userID),
				slog.Uint64("seed", seed),
			)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible demo data")
	return cmd
}

// seedDemoData creates the gold demo account with a faker-generated training
// history. The account logs in with either of the documented demo passwords.
func seedDemoData(ctx context.Context, store storage.Store, seed uint64) (uint64, error) {
	faker := gofakeit.New(seed)

	hash, err := sec.HashPassword("smiths123ABC$")
	if err != nil {
		return 0, err
	}
	userID, err := store.CreateUser(ctx, db.User{
		Username:     "gold",
		PasswordHash: hash,
		Email:        "gold@example.com",
		FullName:     "Gold Smiths",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create demo user: %w", err)
	}

	types, err := store.ListExerciseTypes(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for range seedWorkouts {
		date := now.AddDate(0, 0, -faker.IntN(seedHistoryDays))
		workout := db.Workout{
			UserID:          userID,
			Date:            date.Format("2006-01-02"),
			DurationMinutes: int64(20 + faker.IntN(70)),
			Notes:           seedNotes[faker.IntN(len(seedNotes))],
		}

		var exercises []db.WorkoutExercise
		for range 1 + faker.IntN(seedMaxExercises) {
			exercises = append(exercises, seedExercise(faker, types))
		}
		if _, err := store.CreateWorkout(ctx, workout, exercises); err != nil {
			return 0, fmt.Errorf("failed to create demo workout: %w", err)
		}
	}

	for i := range seedGoals {
		_, err := store.CreateGoal(ctx, db.Goal{
			UserID:       userID,
			GoalType:     seedGoalTypes[i%len(seedGoalTypes)],
			TargetValue:  float64(10 * (1 + faker.IntN(20))),
			CurrentValue: float64(faker.IntN(50)),
			TargetDate:   now.AddDate(0, 1+faker.IntN(6), 0).Format("2006-01-02"),
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create demo goal: %w", err)
		}
	}

	return userID, nil
}

func seedExercise(faker *gofakeit.Faker, types []db.ExerciseType) db.WorkoutExercise {
	et := types[faker.IntN(len(types))]
	ex := db.WorkoutExercise{
		ExerciseTypeID: et.ID,
		CaloriesBurned: nullInt64(int64(80 + faker.IntN(400))),
	}
	if et.Category == "Cardio" {
		ex.DistanceKm = nullFloat64(float64(faker.IntN(200)) / 10)
	} else {
		ex.Sets = nullInt64(int64(2 + faker.IntN(4)))
		ex.Reps = nullInt64(int64(5 + faker.IntN(11)))
		if et.Category == "Strength" {
			ex.WeightKg = nullFloat64(float64(20 + 5*faker.IntN(25)))
		}
	}
	return ex
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Valid: true, Int64: v}
}

func nullFloat64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Valid: true, Float64: v}
}
