package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type UserRepository interface {
	// Create fails with ErrDuplicate when the e-mail is taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func scanUser(row rowScanner, u *models.User) error {
	var grade sql.NullInt64
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.Role,
		&grade,
		&u.CreatedAt,
	)
	if err != nil {
		return err
	}
	u.ClassGrade = intPtr(grade)
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, full_name, role, class_grade, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.FullName,
		user.Role,
		user.ClassGrade,
		user.CreatedAt,
	).Scan(&user.ID)

	return r.translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, full_name, role, class_grade, created_at FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, full_name, role, class_grade, created_at FROM users WHERE email = $1`
	return r.get(ctx, query, email)
}

func (r *userRepository) get(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, arg), user)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
