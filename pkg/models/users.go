package models

import "time"

// UserID uniquely identifies a user in the identity directory.
type UserID string

// TeamID uniquely identifies a team in the identity directory.
type TeamID string

// UserRole distinguishes ordinary users from alert administrators.
type UserRole string

const (
	UserRoleMember UserRole = "user"
	UserRoleAdmin  UserRole = "admin"
)

// User is reference data owned by the identity collaborator. The engine only
// reads it to resolve visibility; a user may have no team.
type User struct {
	ID        UserID    `json:"id"`
	Name      string    `json:"name"`
	TeamID    TeamID    `json:"team_id,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Team is reference data owned by the identity collaborator.
type Team struct {
	ID        TeamID    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
