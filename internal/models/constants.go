package models

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

const (
	MenuTypeStarter = "starter"
	MenuTypeMain    = "main"
	MenuTypeDessert = "dessert"
)

const (
	CourseOptionTwo   = "2-course"
	CourseOptionThree = "3-course"
)

const (
	// MenuCacheTTL lifetime of the cached customer menu, in seconds.
	MenuCacheTTL = 30 * 60

	// ReferenceRetries attempts to generate a unique booking reference.
	ReferenceRetries = 3
)

// ValidMenuType reports whether t is one of the three course types.
func ValidMenuType(t string) bool {
	return t == MenuTypeStarter || t == MenuTypeMain || t == MenuTypeDessert
}

// ValidPaymentStatus reports whether s is an accepted payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentPaid
}
