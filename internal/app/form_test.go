package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fields(errs []FieldError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestRegisterFormValidate(t *testing.T) {
	t.Parallel()

	valid := RegisterForm{
		Username: "gold",
		Email:    "gold@example.com",
		Password: "smiths123ABC$",
		FullName: "Gold Smiths",
	}

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		want   []string
	}{
		{
			name:   "valid form passes",
			mutate: func(*RegisterForm) {},
		},
		{
			name:   "short username",
			mutate: func(f *RegisterForm) { f.Username = "ab" },
			want:   []string{"username"},
		},
		{
			name:   "whitespace username",
			mutate: func(f *RegisterForm) { f.Username = "   a   " },
			want:   []string{"username"},
		},
		{
			name:   "short password",
			mutate: func(f *RegisterForm) { f.Password = "aB1!" },
			want:   []string{"password"},
		},
		{
			name:   "password missing character classes",
			mutate: func(f *RegisterForm) { f.Password = "lowercaseonly" },
			want:   []string{"password", "password", "password"},
		},
		{
			name:   "password special char outside the accepted set",
			mutate: func(f *RegisterForm) { f.Password = "Secret123~" },
			want:   []string{"password"},
		},
		{
			name:   "invalid email",
			mutate: func(f *RegisterForm) { f.Email = "not-an-email" },
			want:   []string{"email"},
		},
		{
			name:   "blank full name",
			mutate: func(f *RegisterForm) { f.FullName = "  " },
			want:   []string{"full_name"},
		},
		{
			name: "everything wrong reports in field order",
			mutate: func(f *RegisterForm) {
				*f = RegisterForm{Username: "x", Password: "short", Email: "@", FullName: ""}
			},
			want: []string{
				"username",
				"password", "password", "password", "password",
				"email",
				"full_name",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			form := valid
			tt.mutate(&form)
			assert.Equal(t, tt.want, fields(form.Validate()))
		})
	}
}

func TestWorkoutFormValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form WorkoutForm
		want []string
	}{
		{
			name: "valid",
			form: WorkoutForm{Date: "2026-08-01", Duration: "45"},
		},
		{
			name: "bad date and zero duration",
			form: WorkoutForm{Date: "01/08/2026", Duration: "0"},
			want: []string{"workout_date", "duration_minutes"},
		},
		{
			name: "negative duration",
			form: WorkoutForm{Date: "2026-08-01", Duration: "-10"},
			want: []string{"duration_minutes"},
		},
		{
			name: "non-numeric duration",
			form: WorkoutForm{Date: "2026-08-01", Duration: "lots"},
			want: []string{"duration_minutes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fields(tt.form.Validate()))
		})
	}
}

func TestGoalFormValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form GoalForm
		want []string
	}{
		{
			name: "valid",
			form: GoalForm{GoalType: "weight_loss", TargetValue: "75", TargetDate: "2026-12-31"},
		},
		{
			name: "all missing",
			form: GoalForm{},
			want: []string{"goal_type", "target_value", "target_date"},
		},
		{
			name: "zero target",
			form: GoalForm{GoalType: "distance", TargetValue: "0", TargetDate: "2026-12-31"},
			want: []string{"target_value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fields(tt.form.Validate()))
		})
	}
}
