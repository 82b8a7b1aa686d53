package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alertdeck/internal/core"
	"alertdeck/pkg/models"
)

// Identity directory methods. Users and teams are owned by the identity
// collaborator; the engine reads them and the app seeds them from config.

const (
	selectUserBase = `SELECT id, name, team_id, role, created_at FROM users`
	selectTeamBase = `SELECT id, name, created_at FROM teams`

	upsertUserQuery = `INSERT INTO users (id, name, team_id, role)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, team_id = excluded.team_id, role = excluded.role`

	upsertTeamQuery = `INSERT INTO teams (id, name)
VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name`
)

// GetUser retrieves a user by ID. Returns core.ErrNotFound when absent.
func (db *DB) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	row := db.readDB.QueryRowContext(ctx, selectUserBase+" WHERE id = ?", string(id))
	return scanUser(row)
}

// ListUsers fetches the full user directory.
func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.readDB.QueryContext(ctx, selectUserBase+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// ListTeams fetches the full team directory.
func (db *DB) ListTeams(ctx context.Context) ([]*models.Team, error) {
	rows, err := db.readDB.QueryContext(ctx, selectTeamBase+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var (
			id        string
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &models.Team{ID: models.TeamID(id), Name: name, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}
	return teams, nil
}

// UpsertUser inserts or refreshes a directory user. Used by config seeding.
func (db *DB) UpsertUser(ctx context.Context, user *models.User) error {
	var teamID sql.NullString
	if user.TeamID != "" {
		teamID = sql.NullString{String: string(user.TeamID), Valid: true}
	}
	role := user.Role
	if role == "" {
		role = models.UserRoleMember
	}
	if _, err := db.writeDB.ExecContext(ctx, upsertUserQuery, string(user.ID), user.Name, teamID, string(role)); err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// UpsertTeam inserts or refreshes a directory team. Used by config seeding.
func (db *DB) UpsertTeam(ctx context.Context, team *models.Team) error {
	if _, err := db.writeDB.ExecContext(ctx, upsertTeamQuery, string(team.ID), team.Name); err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
	}
	return nil
}

func scanUser(scanner interface{ Scan(dest ...any) error }) (*models.User, error) {
	var (
		id        string
		name      string
		teamID    sql.NullString
		role      string
		createdAt time.Time
	)
	if err := scanner.Scan(&id, &name, &teamID, &role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &models.User{
		ID:        models.UserID(id),
		Name:      name,
		TeamID:    models.TeamID(teamID.String),
		Role:      models.UserRole(role),
		CreatedAt: createdAt,
	}, nil
}
