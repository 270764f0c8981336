package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

type personRepository struct {
	db *sqlx.DB
}

var _ people.Repository = (*personRepository)(nil) // interface compliance check

func NewPersonRepository(db *sqlx.DB) *personRepository {
	return &personRepository{db: db}
}

func (repo personRepository) getExec(exec []core.DBExecutor) core.DBExecutor {
	if len(exec) > 0 {
		return exec[0]
	}
	return repo.db
}

// personRow mirrors the person table with its nullable columns.
type personRow struct {
	ID           string         `db:"id"`
	FullName     string         `db:"full_name"`
	Email        string         `db:"email"`
	Role         string         `db:"role"`
	Department   string         `db:"department"`
	RollNumber   sql.NullString `db:"roll_number"`
	Mobile       string         `db:"mobile"`
	Year         sql.NullInt32  `db:"year"`
	Semester     sql.NullInt32  `db:"semester"`
	Section      string         `db:"section"`
	ExternalID   string         `db:"external_id"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func rowOf(p people.Person) personRow {
	return personRow{
		ID:           p.ID,
		FullName:     p.FullName,
		Email:        p.Email,
		Role:         p.Role,
		Department:   p.Department,
		RollNumber:   sql.NullString{String: p.RollNumber, Valid: p.RollNumber != ""},
		Mobile:       p.Mobile,
		Year:         sql.NullInt32{Int32: int32(p.Year), Valid: p.Year > 0},
		Semester:     sql.NullInt32{Int32: int32(p.Semester), Valid: p.Semester > 0},
		Section:      p.Section,
		ExternalID:   p.ExternalID,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func (r personRow) person() people.Person {
	return people.Person{
		ID:           r.ID,
		FullName:     r.FullName,
		Email:        r.Email,
		Role:         r.Role,
		Department:   r.Department,
		RollNumber:   r.RollNumber.String,
		Mobile:       r.Mobile,
		Year:         int(r.Year.Int32),
		Semester:     int(r.Semester.Int32),
		Section:      r.Section,
		ExternalID:   r.ExternalID,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const personColumns = `id, full_name, email, role, department, roll_number, mobile,
	year, semester, section, external_id, password_hash, created_at, updated_at`

func (repo personRepository) EmailExists(ctx context.Context, email string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, repo.getExec(exec), &exists,
		`SELECT EXISTS (SELECT 1 FROM person WHERE email = $1)`, email)
	if err != nil {
		return false, errors.Wrap(err, "checking email")
	}
	return exists, nil
}

func (repo personRepository) GetPerson(ctx context.Context, filter people.GetFilter, exec ...core.DBExecutor) (people.Person, error) {
	var (
		where string
		arg   string
	)
	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return people.Person{}, people.ErrNotFound
		}
		where, arg = "id = $1", filter.ID
	case filter.RollNumber != "":
		where, arg = "roll_number = $1", filter.RollNumber
	case filter.Email != "":
		where, arg = "email = $1", filter.Email
	default:
		return people.Person{}, people.ErrNotFound
	}

	var row personRow
	err := sqlx.GetContext(ctx, repo.getExec(exec), &row,
		`SELECT `+personColumns+` FROM person WHERE `+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return people.Person{}, people.ErrNotFound
		}
		return people.Person{}, errors.Wrap(err, "finding person")
	}
	return row.person(), nil
}

func (repo personRepository) CreatePerson(ctx context.Context, p people.Person, exec ...core.DBExecutor) (people.Person, error) {
	p.ID = uuid.New().String()
	row := rowOf(p)

	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec),
		`INSERT INTO person (`+personColumns+`)
		 VALUES (:id, :full_name, :email, :role, :department, :roll_number, :mobile,
		         :year, :semester, :section, :external_id, :password_hash, :created_at, :updated_at)`, row)
	if err != nil {
		if isUniqueViolation(err, "person_email_key") {
			return people.Person{}, people.ErrEmailExists
		}
		return people.Person{}, errors.Wrap(err, "inserting person")
	}
	return p, nil
}

func (repo personRepository) UpdatePerson(ctx context.Context, p people.Person, exec ...core.DBExecutor) (people.Person, error) {
	row := rowOf(p)
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec),
		`UPDATE person SET
			full_name = :full_name, department = :department, roll_number = :roll_number,
			mobile = :mobile, year = :year, semester = :semester, section = :section,
			external_id = :external_id, updated_at = :updated_at
		 WHERE id = :id`, row)
	if err != nil {
		return people.Person{}, errors.Wrap(err, "updating person")
	}
	return p, nil
}
