package service

import (
	"testing"

	"yulebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGuest(name string) models.GuestSelection {
	return models.GuestSelection{
		Name:         name,
		CourseOption: models.CourseOptionThree,
		Orders:       models.CourseSelection{Starter: 1, Main: 2, Dessert: 3},
	}
}

func TestValidateForm(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		form := &models.BookingForm{
			OrganizerName:  "Jamie",
			OrganizerEmail: "jamie@example.com",
			OrganizerPhone: "07912 345 678",
			Guests:         []models.GuestSelection{validGuest("Jamie")},
		}
		assert.NoError(t, ValidateForm(form))
	})

	t.Run("OrganizerNameRequired", func(t *testing.T) {
		form := &models.BookingForm{
			OrganizerName: "   ",
			Guests:        []models.GuestSelection{validGuest("Jamie")},
		}
		err := ValidateForm(form)
		require.Error(t, err)
		assert.EqualError(t, err, "organizer name is required")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		form := &models.BookingForm{
			OrganizerName:  "Jamie",
			OrganizerEmail: "not-an-email",
			Guests:         []models.GuestSelection{validGuest("Jamie")},
		}
		err := ValidateForm(form)
		require.Error(t, err)
		assert.EqualError(t, err, "organizer email is not a valid email address")
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		form := &models.BookingForm{
			OrganizerName:  "Jamie",
			OrganizerPhone: "12345",
			Guests:         []models.GuestSelection{validGuest("Jamie")},
		}
		err := ValidateForm(form)
		require.Error(t, err)
		assert.EqualError(t, err, "organizer phone is not a valid UK mobile number")
	})

	t.Run("OptionalContactFieldsEmpty", func(t *testing.T) {
		form := &models.BookingForm{
			OrganizerName: "Jamie",
			Guests:        []models.GuestSelection{validGuest("Jamie")},
		}
		assert.NoError(t, ValidateForm(form))
	})

	t.Run("NoGuests", func(t *testing.T) {
		form := &models.BookingForm{OrganizerName: "Jamie"}
		err := ValidateForm(form)
		require.Error(t, err)
		assert.EqualError(t, err, "at least one guest is required")
	})
}

func TestValidateSelections(t *testing.T) {
	tests := []struct {
		name    string
		guest   models.GuestSelection
		wantErr string
	}{
		{
			name:  "ThreeCourseComplete",
			guest: validGuest("Alice"),
		},
		{
			name: "TwoCourseWithStarter",
			guest: models.GuestSelection{
				Name:         "Bob",
				CourseOption: models.CourseOptionTwo,
				Orders:       models.CourseSelection{Starter: 1, Main: 2},
			},
		},
		{
			name: "TwoCourseWithDessert",
			guest: models.GuestSelection{
				Name:         "Bob",
				CourseOption: models.CourseOptionTwo,
				Orders:       models.CourseSelection{Main: 2, Dessert: 3},
			},
		},
		{
			name: "TwoCourseWithBothAllowed",
			guest: models.GuestSelection{
				Name:         "Bob",
				CourseOption: models.CourseOptionTwo,
				Orders:       models.CourseSelection{Starter: 1, Main: 2, Dessert: 3},
			},
		},
		{
			name: "MissingName",
			guest: models.GuestSelection{
				Name:         "  ",
				CourseOption: models.CourseOptionThree,
				Orders:       models.CourseSelection{Starter: 1, Main: 2, Dessert: 3},
			},
			wantErr: "all guests must have a name",
		},
		{
			name: "MissingMain",
			guest: models.GuestSelection{
				Name:         "Carol",
				CourseOption: models.CourseOptionThree,
				Orders:       models.CourseSelection{Starter: 1, Dessert: 3},
			},
			wantErr: "Carol must select a main course",
		},
		{
			name: "ThreeCourseMissingDessert",
			guest: models.GuestSelection{
				Name:         "Carol",
				CourseOption: models.CourseOptionThree,
				Orders:       models.CourseSelection{Starter: 1, Main: 2},
			},
			wantErr: "Carol must select a starter, main, and dessert for 3-course meal",
		},
		{
			name: "TwoCourseMainOnly",
			guest: models.GuestSelection{
				Name:         "Carol",
				CourseOption: models.CourseOptionTwo,
				Orders:       models.CourseSelection{Main: 2},
			},
			wantErr: "Carol must select either a starter or dessert for 2-course meal",
		},
		{
			name: "UnknownCourseOption",
			guest: models.GuestSelection{
				Name:         "Carol",
				CourseOption: "5-course",
				Orders:       models.CourseSelection{Starter: 1, Main: 2, Dessert: 3},
			},
			wantErr: "Carol has an invalid course option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelections([]models.GuestSelection{tt.guest})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestValidateSelectionsFirstFailureWins(t *testing.T) {
	guests := []models.GuestSelection{
		validGuest("Alice"),
		{Name: "Bob", CourseOption: models.CourseOptionThree},
		{Name: "", CourseOption: models.CourseOptionTwo},
	}

	err := ValidateSelections(guests)
	require.Error(t, err)
	assert.EqualError(t, err, "Bob must select a main course")
}
