package models

// CourseSelection holds the menu item id chosen for each course slot.
// Zero means the slot was left empty.
type CourseSelection struct {
	Starter int64 `json:"starter,omitempty"`
	Main    int64 `json:"main,omitempty"`
	Dessert int64 `json:"dessert,omitempty"`
}

// ItemIDs returns the selected ids in course order, skipping empty slots.
func (c CourseSelection) ItemIDs() []int64 {
	ids := make([]int64, 0, 3)
	if c.Starter != 0 {
		ids = append(ids, c.Starter)
	}
	if c.Main != 0 {
		ids = append(ids, c.Main)
	}
	if c.Dessert != 0 {
		ids = append(ids, c.Dessert)
	}
	return ids
}

type GuestSelection struct {
	Name                string          `json:"guest_name"`
	CourseOption        string          `json:"course_option"` // 2-course, 3-course
	DietaryRequirements string          `json:"dietary_requirements,omitempty"`
	Orders              CourseSelection `json:"orders"`
}

type BookingForm struct {
	OrganizerName  string           `json:"organizer_name"`
	OrganizerEmail string           `json:"organizer_email"`
	OrganizerPhone string           `json:"organizer_phone"`
	Notes          string           `json:"notes"`
	Guests         []GuestSelection `json:"guests"`
}
