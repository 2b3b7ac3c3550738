package service

import (
	"fmt"
	"regexp"
	"strings"

	"yulebook/internal/models"
)

// ValidationError carries a message safe to show to the customer verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(\+44\s?7\d{3}|\(?07\d{3}\)?)\s?\d{3}\s?\d{3}$`)
)

// ValidateForm checks the booking-level fields, then every guest in input
// order. The first failing rule wins and names the offending guest.
func ValidateForm(form *models.BookingForm) error {
	if strings.TrimSpace(form.OrganizerName) == "" {
		return validationErrorf("organizer name is required")
	}

	if form.OrganizerEmail != "" && !emailPattern.MatchString(form.OrganizerEmail) {
		return validationErrorf("organizer email is not a valid email address")
	}

	if form.OrganizerPhone != "" && !phonePattern.MatchString(strings.ReplaceAll(form.OrganizerPhone, " ", "")) {
		return validationErrorf("organizer phone is not a valid UK mobile number")
	}

	if len(form.Guests) == 0 {
		return validationErrorf("at least one guest is required")
	}

	return ValidateSelections(form.Guests)
}

// ValidateSelections enforces the per-guest course rules:
//
//  1. guest name non-empty after trimming
//  2. a main course is always required
//  3. 3-course guests need a starter and a dessert as well
//  4. 2-course guests need at least one of starter or dessert; picking both
//     is allowed and simply priced for both dishes
func ValidateSelections(guests []models.GuestSelection) error {
	for _, guest := range guests {
		name := strings.TrimSpace(guest.Name)
		if name == "" {
			return validationErrorf("all guests must have a name")
		}

		if guest.Orders.Main == 0 {
			return validationErrorf("%s must select a main course", name)
		}

		switch guest.CourseOption {
		case models.CourseOptionThree:
			if guest.Orders.Starter == 0 || guest.Orders.Dessert == 0 {
				return validationErrorf("%s must select a starter, main, and dessert for 3-course meal", name)
			}
		case models.CourseOptionTwo:
			if guest.Orders.Starter == 0 && guest.Orders.Dessert == 0 {
				return validationErrorf("%s must select either a starter or dessert for 2-course meal", name)
			}
		default:
			return validationErrorf("%s has an invalid course option", name)
		}
	}
	return nil
}
