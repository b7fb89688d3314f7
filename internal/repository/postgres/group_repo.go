package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kanzie/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

// NewGroupRepository returns a domain.GroupRepository implemented with Postgres.
func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{DB: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO groups (name, invite_code, created_at) VALUES ($1, $2, $3) RETURNING id`,
		g.Name, g.InviteCode, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	for _, userID := range g.MemberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3) ON CONFLICT (group_id, user_id) DO NOTHING`,
			g.ID, userID, g.CreatedAt,
		); err != nil {
			if hasPQCode(err, pqForeignKeyViolation) {
				return fmt.Errorf("add member %d: %w", userID, domain.ErrUserNotFound)
			}
			return fmt.Errorf("add member %d: %w", userID, err)
		}
	}
	return tx.Commit()
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	return r.getOne(ctx, `SELECT id, name, invite_code, created_at FROM groups WHERE id = $1`, id)
}

func (r *groupRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	return r.getOne(ctx, `SELECT id, name, invite_code, created_at FROM groups WHERE invite_code = $1`, code)
}

func (r *groupRepository) getOne(ctx context.Context, query string, arg any) (*domain.Group, error) {
	g := &domain.Group{}
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&g.ID, &g.Name, &g.InviteCode, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	members, err := r.ListMemberIDs(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.MemberIDs = members
	return g, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *groupRepository) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY joined_at, user_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
