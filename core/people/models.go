package people

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidyalabs/vidya/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleHOD     = "hod"
	RoleAdmin   = "admin"
)

// Person is a campus member profile. Students and faculty share the
// table; Role disambiguates. Email is unique store-wide, RollNumber is
// the student's hall ticket.
type Person struct {
	ID           string    `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	Department   string    `json:"department" db:"department"`
	RollNumber   string    `json:"roll_number,omitempty" db:"roll_number"`
	Mobile       string    `json:"mobile,omitempty" db:"mobile"`
	Year         int       `json:"year,omitempty" db:"year"`
	Semester     int       `json:"semester,omitempty" db:"semester"`
	Section      string    `json:"section,omitempty" db:"section"`
	ExternalID   string    `json:"-" db:"external_id"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (p *Person) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Person) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

func (p *Person) IsStudent() bool { return p.Role == RoleStudent }
func (p *Person) IsFaculty() bool { return p.Role == RoleFaculty }

// NewStudent carries an extracted student record into the upsert service.
type NewStudent struct {
	FullName   string `json:"full_name" validate:"required"`
	HallTicket string `json:"hall_ticket"`
	Mobile     string `json:"mobile"`
	Department string `json:"department" validate:"required"`
	Year       int    `json:"year"`
	Semester   int    `json:"semester"`
	Section    string `json:"section"`
}

// Validate cleans the record in place and checks its constraints.
func (ns *NewStudent) Validate() error {
	ns.FullName = core.CollapseSpaces(ns.FullName)
	ns.HallTicket = core.CleanString(ns.HallTicket)
	ns.Department = core.CleanString(ns.Department)
	return core.Validate.Struct(ns)
}

// NewFaculty carries a derived faculty record into the upsert service.
type NewFaculty struct {
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department" validate:"required"`
}

func (nf *NewFaculty) Validate() error {
	nf.FullName = core.CollapseSpaces(nf.FullName)
	nf.Department = core.CleanString(nf.Department)
	return core.Validate.Struct(nf)
}
