package models

import "time"

// Patient is a resident registered in the facility directory. It is read-only for the record API.
type Patient struct {
	ID        string    `db:"id" json:"id"`
	HN        string    `db:"hn" json:"HN"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	Gender    string    `db:"gender" json:"gender"`
	DOB       time.Time `db:"dob" json:"DOB"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins given name and surname.
func (p Patient) FullName() string {
	if p.Surname == "" {
		return p.Name
	}
	return p.Name + " " + p.Surname
}
