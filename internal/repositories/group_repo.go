package repositories

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/common"
	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type GroupRepository interface {
	GetByName(ctx context.Context, name string) (*models.Group, error)
	IsMember(ctx context.Context, userID uuid.UUID, groupName string) (bool, error)
	AddMember(ctx context.Context, userID, groupID uuid.UUID) error
	RemoveMember(ctx context.Context, userID, groupID uuid.UUID) error
	ListMembers(ctx context.Context, groupName string) ([]*models.User, error)
}

type groupRepo struct {
	db Querier
}

func NewGroupRepo(db Querier) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) GetByName(ctx context.Context, name string) (*models.Group, error) {
	group := &models.Group{}
	query := `SELECT id, name, created_at FROM groups WHERE name = $1`
	err := r.db.QueryRow(ctx, query, name).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: group", common.ErrNotFound)
		}
		return nil, err
	}
	return group, nil
}

func (r *groupRepo) IsMember(ctx context.Context, userID uuid.UUID, groupName string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM user_groups ug
		JOIN groups g ON g.id = ug.group_id
		WHERE ug.user_id = $1 AND g.name = $2
	`
	if err := r.db.QueryRow(ctx, query, userID, groupName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *groupRepo) AddMember(ctx context.Context, userID, groupID uuid.UUID) error {
	query := `
		INSERT INTO user_groups (id, user_id, group_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, group_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), userID, groupID)
	return err
}

func (r *groupRepo) RemoveMember(ctx context.Context, userID, groupID uuid.UUID) error {
	query := `DELETE FROM user_groups WHERE user_id = $1 AND group_id = $2`
	_, err := r.db.Exec(ctx, query, userID, groupID)
	return err
}

func (r *groupRepo) ListMembers(ctx context.Context, groupName string) ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_staff, u.created_at, u.updated_at
		FROM users u
		JOIN user_groups ug ON ug.user_id = u.id
		JOIN groups g ON g.id = ug.group_id
		WHERE g.name = $1
		ORDER BY u.username ASC
	`
	rows, err := r.db.Query(ctx, query, groupName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.IsStaff, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
