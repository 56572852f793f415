package entity

import "time"

// Group is a set of users that coordinate schedules together.
type Group struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GroupMember is one user's membership in a group.
type GroupMember struct {
	ID       int64     `db:"id" json:"id"`
	GroupID  int64     `db:"group_id" json:"group_id"`
	UserID   string    `db:"user_id" json:"user_id"`
	UserName string    `db:"user_name" json:"user_name"`
	Role     string    `db:"role" json:"role"` // OWNER, ADMIN, MEMBER
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
