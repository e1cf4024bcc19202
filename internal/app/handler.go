package app

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/drdobbymazz/fittrack/internal/content"
	"github.com/drdobbymazz/fittrack/internal/sec"
	"github.com/drdobbymazz/fittrack/internal/session"
	"github.com/drdobbymazz/fittrack/internal/storage"
	"github.com/drdobbymazz/fittrack/internal/storage/db"
)

const (
	dashboardWorkoutLimit = 5
	monthlyStatsLimit     = 6
	exerciseStatsLimit    = 10

	// The add-workout form always shows at least this many exercise rows.
	minExerciseRows = 3
)

type handler struct {
	logger   *slog.Logger
	store    storage.Store
	sessions *session.Store
}

func (h handler) register(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/about", h.about)
	e.GET("/login", h.loginPage)
	e.POST("/login", h.login)
	e.GET("/register", h.registerPage)
	e.POST("/register", h.registerUser)
	e.GET("/logout", h.logout)

	authed := e.Group("", requireLogin(h.sessions))
	authed.GET("/dashboard", h.dashboard)
	authed.GET("/search", h.search)
	authed.POST("/search", h.search)
	authed.GET("/add-workout", h.addWorkoutPage)
	authed.POST("/add-workout", h.addWorkout)
	authed.GET("/workout/:id", h.workoutDetail)
	authed.GET("/goals", h.goals)
	authed.POST("/add-goal", h.addGoal)
	authed.GET("/statistics", h.statistics)
}

// basePage is the data every page shares with the layout.
type basePage struct {
	Title    string
	LoggedIn bool
	Name     string
}

func (h handler) base(c echo.Context, title string) basePage {
	page := basePage{Title: title}
	if sess, ok := currentSession(c); ok {
		page.LoggedIn = true
		page.Name = sess.FullName
	} else if sess, ok := h.sessions.Current(c); ok {
		page.LoggedIn = true
		page.Name = sess.FullName
	}
	return page
}

func (h handler) home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", h.base(c, "Welcome"))
}

func (h handler) about(c echo.Context) error {
	return c.Render(http.StatusOK, "about", h.base(c, "About"))
}

type loginPage struct {
	basePage
	Form  LoginForm
	Error string
}

func (h handler) loginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", loginPage{basePage: h.base(c, "Log in")})
}

// failedLoginMessage is deliberately identical for unknown users, wrong
// passwords, and unreadable stored hashes.
const failedLoginMessage = "Invalid username or password"

func (h handler) login(c echo.Context) error {
	form := bindLoginForm(c)

	user, err := h.store.GetUserByName(c.Request().Context(), form.Username)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Fall through to the generic failure below.
	case err != nil:
		return fmt.Errorf("failed to load user for login: %w", err)
	}

	if err != nil || !sec.VerifyPassword(form.Username, form.Password, user.PasswordHash) {
		return c.Render(http.StatusOK, "login", loginPage{
			basePage: h.base(c, "Log in"),
			Form:     LoginForm{Username: form.Username},
			Error:    failedLoginMessage,
		})
	}

	h.sessions.Issue(c, session.Identity{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

type registerPage struct {
	basePage
	Form   RegisterForm
	Errors []FieldError
}

func (h handler) registerPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", registerPage{basePage: h.base(c, "Register")})
}

func (h handler) registerUser(c echo.Context) error {
	form := bindRegisterForm(c)

	rerender := func(errs []FieldError) error {
		echoed := form
		echoed.Password = ""
		return c.Render(http.StatusOK, "register", registerPage{
			basePage: h.base(c, "Register"),
			Form:     echoed,
			Errors:   errs,
		})
	}

	if errs := form.Validate(); len(errs) > 0 {
		return rerender(errs)
	}

	hash, err := sec.HashPassword(form.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = h.store.CreateUser(c.Request().Context(), db.User{
		Username:     form.Username,
		PasswordHash: hash,
		Email:        form.Email,
		FullName:     form.FullName,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return rerender([]FieldError{{
			Field:   "username",
			Message: "Username is already taken",
		}})
	} else if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return c.Redirect(http.StatusFound, "/login")
}

func (h handler) logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusFound, "/")
}

type dashboardPage struct {
	basePage
	Recent []db.WorkoutSummary
	Stats  db.LifetimeStats
}

func (h handler) dashboard(c echo.Context) error {
	sess, _ := currentSession(c)
	ctx := c.Request().Context()

	recent, err := h.store.RecentWorkouts(ctx, sess.UserID, dashboardWorkoutLimit)
	if err != nil {
		return fmt.Errorf("failed to load recent workouts: %w", err)
	}
	stats, err := h.store.LifetimeStats(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to load lifetime stats: %w", err)
	}

	return c.Render(http.StatusOK, "dashboard", dashboardPage{
		basePage: h.base(c, "Dashboard"),
		Recent:   recent,
		Stats:    stats,
	})
}

type searchPage struct {
	basePage
	Query    string
	Searched bool
	Results  []db.SearchResult
}

func (h handler) search(c echo.Context) error {
	sess, _ := currentSession(c)
	page := searchPage{basePage: h.base(c, "Search"), Query: c.FormValue("q")}

	if page.Query != "" {
		results, err := h.store.SearchWorkouts(c.Request().Context(), sess.UserID, page.Query)
		if err != nil {
			return fmt.Errorf("failed to search workouts: %w", err)
		}
		page.Searched = true
		page.Results = results
	}

	return c.Render(http.StatusOK, "search", page)
}

type addWorkoutPage struct {
	basePage
	Form   WorkoutForm
	Errors []FieldError
	Types  []db.ExerciseType
}

func (h handler) addWorkoutPage(c echo.Context) error {
	types, err := h.store.ListExerciseTypes(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed to load exercise types: %w", err)
	}
	return c.Render(http.StatusOK, "add_workout", addWorkoutPage{
		basePage: h.base(c, "Add Workout"),
		Form:     padExerciseRows(WorkoutForm{}),
		Types:    types,
	})
}

func (h handler) addWorkout(c echo.Context) error {
	sess, _ := currentSession(c)
	ctx := c.Request().Context()

	form, err := bindWorkoutForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form submission")
	}

	if errs := form.Validate(); len(errs) > 0 {
		types, err := h.store.ListExerciseTypes(ctx)
		if err != nil {
			return fmt.Errorf("failed to load exercise types: %w", err)
		}
		return c.Render(http.StatusOK, "add_workout", addWorkoutPage{
			basePage: h.base(c, "Add Workout"),
			Form:     padExerciseRows(form),
			Errors:   errs,
			Types:    types,
		})
	}

	minutes, _ := strconv.ParseInt(form.Duration, 10, 64)
	workout := db.Workout{
		UserID:          sess.UserID,
		Date:            form.Date,
		DurationMinutes: minutes,
		Notes:           form.Notes,
	}

	var exercises []db.WorkoutExercise
	for _, row := range form.Exercises {
		// Rows with no exercise selected are blank filler and skipped.
		typeID, err := strconv.ParseUint(row.ExerciseTypeID, 10, 64)
		if err != nil || typeID == 0 {
			continue
		}
		exercises = append(exercises, db.WorkoutExercise{
			ExerciseTypeID: typeID,
			Sets:           nullInt(row.Sets),
			Reps:           nullInt(row.Reps),
			WeightKg:       nullFloat(row.WeightKg),
			DistanceKm:     nullFloat(row.DistanceKm),
			CaloriesBurned: nullInt(row.CaloriesBurned),
		})
	}

	if _, err := h.store.CreateWorkout(ctx, workout, exercises); err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

type workoutDetailPage struct {
	basePage
	Workout   db.Workout
	Exercises []db.ExerciseDetail
	NotesHTML template.HTML
}

func (h handler) workoutDetail(c echo.Context) error {
	sess, _ := currentSession(c)
	ctx := c.Request().Context()

	workoutID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.ErrNotFound
	}

	workout, err := h.store.GetWorkout(ctx, sess.UserID, workoutID)
	if errors.Is(err, storage.ErrNotFound) {
		return echo.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to load workout: %w", err)
	}

	exercises, err := h.store.ListWorkoutExercises(ctx, sess.UserID, workoutID)
	if err != nil {
		return fmt.Errorf("failed to load workout exercises: %w", err)
	}

	notes, err := content.RenderNotes(workout.Notes)
	if err != nil {
		h.logger.Error("failed to render workout notes",
			slog.Uint64("workout_id", workoutID),
			slog.Any("error", err),
		)
		notes = ""
	}

	return c.Render(http.StatusOK, "workout_detail", workoutDetailPage{
		basePage:  h.base(c, "Workout"),
		Workout:   workout,
		Exercises: exercises,
		NotesHTML: notes,
	})
}

type goalsPage struct {
	basePage
	Goals  []db.Goal
	Form   GoalForm
	Errors []FieldError
}

func (h handler) goals(c echo.Context) error {
	sess, _ := currentSession(c)

	goals, err := h.store.ListGoals(c.Request().Context(), sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	return c.Render(http.StatusOK, "goals", goalsPage{
		basePage: h.base(c, "Goals"),
		Goals:    goals,
	})
}

func (h handler) addGoal(c echo.Context) error {
	sess, _ := currentSession(c)
	ctx := c.Request().Context()

	form := bindGoalForm(c)
	if errs := form.Validate(); len(errs) > 0 {
		goals, err := h.store.ListGoals(ctx, sess.UserID)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		return c.Render(http.StatusOK, "goals", goalsPage{
			basePage: h.base(c, "Goals"),
			Goals:    goals,
			Form:     form,
			Errors:   errs,
		})
	}

	target, _ := strconv.ParseFloat(form.TargetValue, 64)
	current, _ := strconv.ParseFloat(form.CurrentValue, 64)
	_, err := h.store.CreateGoal(ctx, db.Goal{
		UserID:       sess.UserID,
		GoalType:     form.GoalType,
		TargetValue:  target,
		CurrentValue: current,
		TargetDate:   form.TargetDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return c.Redirect(http.StatusFound, "/goals")
}

type statisticsPage struct {
	basePage
	Stats     db.LifetimeStats
	Monthly   []db.MonthlyStat
	Exercises []db.ExerciseStat
}

func (h handler) statistics(c echo.Context) error {
	sess, _ := currentSession(c)
	ctx := c.Request().Context()

	stats, err := h.store.LifetimeStats(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to load lifetime stats: %w", err)
	}
	monthly, err := h.store.MonthlyStats(ctx, sess.UserID, monthlyStatsLimit)
	if err != nil {
		return fmt.Errorf("failed to load monthly stats: %w", err)
	}
	exercises, err := h.store.ExerciseStats(ctx, sess.UserID, exerciseStatsLimit)
	if err != nil {
		return fmt.Errorf("failed to load exercise stats: %w", err)
	}

	return c.Render(http.StatusOK, "statistics", statisticsPage{
		basePage:  h.base(c, "Statistics"),
		Stats:     stats,
		Monthly:   monthly,
		Exercises: exercises,
	})
}

func padExerciseRows(form WorkoutForm) WorkoutForm {
	for len(form.Exercises) < minExerciseRows {
		form.Exercises = append(form.Exercises, WorkoutExerciseForm{})
	}
	return form
}

func nullInt(s string) sql.NullInt64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Valid: true, Int64: v}
}

func nullFloat(s string) sql.NullFloat64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Valid: true, Float64: v}
}
