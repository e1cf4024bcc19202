package app

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"
)

// FieldError is one validation failure, attributed to the form field that
// caused it. Errors are accumulated in field order so the page can show them
// all at once.
type FieldError struct {
	Field   string
	Message string
}

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// RegisterForm carries a registration submission. The values are kept as
// submitted so a failed validation can echo them back.
type RegisterForm struct {
	Username string
	Email    string
	Password string
	FullName string
}

func bindRegisterForm(c echo.Context) RegisterForm {
	return RegisterForm{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		FullName: c.FormValue("full_name"),
	}
}

// Validate accumulates all failures in field order: username, password,
// email, full name.
func (f RegisterForm) Validate() []FieldError {
	var errs []FieldError

	if len(strings.TrimSpace(f.Username)) < 3 {
		errs = append(errs, FieldError{
			Field:   "username",
			Message: "Username must be at least 3 characters long",
		})
	}

	errs = append(errs, validatePassword(f.Password)...)

	if _, err := mail.ParseAddress(f.Email); err != nil {
		errs = append(errs, FieldError{
			Field:   "email",
			Message: "Please enter a valid email address",
		})
	}

	if strings.TrimSpace(f.FullName) == "" {
		errs = append(errs, FieldError{
			Field:   "full_name",
			Message: "Full name is required",
		})
	}

	return errs
}

func validatePassword(password string) []FieldError {
	var errs []FieldError
	add := func(message string) {
		errs = append(errs, FieldError{Field: "password", Message: message})
	}

	if len(password) < 8 {
		add("Password must be at least 8 characters long")
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !lower {
		add("Password must contain a lowercase letter")
	}
	if !upper {
		add("Password must contain an uppercase letter")
	}
	if !digit {
		add("Password must contain a number")
	}
	if !special {
		add("Password must contain a special character")
	}

	return errs
}

// LoginForm carries a login submission. It is never validated beyond
// presence; any failure renders the same generic message.
type LoginForm struct {
	Username string
	Password string
}

func bindLoginForm(c echo.Context) LoginForm {
	return LoginForm{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
}

// WorkoutExerciseForm is one exercise row of the add-workout form. All
// numeric fields are optional; a row with no exercise selected is skipped
// entirely.
type WorkoutExerciseForm struct {
	ExerciseTypeID string
	Sets           string
	Reps           string
	WeightKg       string
	DistanceKm     string
	CaloriesBurned string
}

// WorkoutForm carries an add-workout submission, including the repeated
// exercise rows.
type WorkoutForm struct {
	Date      string
	Duration  string
	Notes     string
	Exercises []WorkoutExerciseForm
}

func bindWorkoutForm(c echo.Context) (WorkoutForm, error) {
	values, err := c.FormParams()
	if err != nil {
		return WorkoutForm{}, err
	}

	form := WorkoutForm{
		Date:     c.FormValue("workout_date"),
		Duration: c.FormValue("duration_minutes"),
		Notes:    c.FormValue("notes"),
	}

	types := values["exercise_type_id"]
	field := func(name string, i int) string {
		if vals := values[name]; i < len(vals) {
			return vals[i]
		}
		return ""
	}
	for i := range types {
		form.Exercises = append(form.Exercises, WorkoutExerciseForm{
			ExerciseTypeID: types[i],
			Sets:           field("sets", i),
			Reps:           field("reps", i),
			WeightKg:       field("weight_kg", i),
			DistanceKm:     field("distance_km", i),
			CaloriesBurned: field("calories_burned", i),
		})
	}
	return form, nil
}

// Validate accumulates failures in field order: date, duration.
func (f WorkoutForm) Validate() []FieldError {
	var errs []FieldError

	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		errs = append(errs, FieldError{
			Field:   "workout_date",
			Message: "Please enter a valid workout date",
		})
	}

	if minutes, err := strconv.ParseInt(f.Duration, 10, 64); err != nil || minutes <= 0 {
		errs = append(errs, FieldError{
			Field:   "duration_minutes",
			Message: "Duration must be a positive number of minutes",
		})
	}

	return errs
}

// GoalForm carries an add-goal submission.
type GoalForm struct {
	GoalType     string
	TargetValue  string
	CurrentValue string
	TargetDate   string
}

func bindGoalForm(c echo.Context) GoalForm {
	return GoalForm{
		GoalType:     c.FormValue("goal_type"),
		TargetValue:  c.FormValue("target_value"),
		CurrentValue: c.FormValue("current_value"),
		TargetDate:   c.FormValue("target_date"),
	}
}

// Validate accumulates failures in field order: goal type, target value,
// target date.
func (f GoalForm) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(f.GoalType) == "" {
		errs = append(errs, FieldError{
			Field:   "goal_type",
			Message: "Please choose a goal type",
		})
	}

	if target, err := strconv.ParseFloat(f.TargetValue, 64); err != nil || target <= 0 {
		errs = append(errs, FieldError{
			Field:   "target_value",
			Message: "Target value must be a positive number",
		})
	}

	if _, err := time.Parse("2006-01-02", f.TargetDate); err != nil {
		errs = append(errs, FieldError{
			Field:   "target_date",
			Message: "Please enter a valid target date",
		})
	}

	return errs
}
