package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kanzie/internal/domain"

	"github.com/lib/pq"
)

const userSelect = `
	SELECT id, email, full_name, bio, avatar_url, city, interests, is_onboarding_completed, created_at
	FROM users
`

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a domain.UserRepository implemented with Postgres.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Interests == nil {
		u.Interests = []string{}
	}
	query := `
		INSERT INTO users (email, full_name, interests, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.FullName, pq.Array(u.Interests), u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, userSelect+` WHERE email = $1`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, userSelect+` WHERE id = $1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarURL, &u.City,
		pq.Array(&u.Interests), &u.IsOnboardingCompleted, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return u, nil
}

func (r *userRepository) UpdateOnboarding(ctx context.Context, id int64, in domain.OnboardingInput) error {
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET city = $2, interests = $3, is_onboarding_completed = TRUE WHERE id = $1`,
		id, in.City, pq.Array(interests))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CountActivity(ctx context.Context, id int64) (int, int, error) {
	var swipes, groups int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM swipes WHERE user_id = $1),
			(SELECT COUNT(*) FROM group_members WHERE user_id = $1)
	`, id).Scan(&swipes, &groups)
	if err != nil {
		return 0, 0, err
	}
	return swipes, groups, nil
}
