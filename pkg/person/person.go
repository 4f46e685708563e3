package person

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Person is a civil identity record. The Arabic name fields mirror the
// Latin ones and may be empty; birth locality and nationality are
// optional references.
type Person struct {
	ID              int64
	FirstName       string
	LastName        string
	FirstNameAr     string
	LastNameAr      string
	Gender          Gender
	BirthDate       *time.Time
	BirthLocalityID *int64
	NationalityID   *int64
}

// FullName is the display form, last name first.
func (p Person) FullName() string {
	return p.LastName + " " + p.FirstName
}
