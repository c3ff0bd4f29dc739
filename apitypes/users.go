package apitypes

import "time"

// User is an operator account managed through the console.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats is the aggregate served under the users stats scope.
type UserStats struct {
	Total         int            `json:"total"`
	Active        int            `json:"active"`
	ByRole        map[string]int `json:"by_role"`
	LastSignupAt  *time.Time     `json:"last_signup_at,omitempty"`
	SignupsLast30 int            `json:"signups_last_30"`
}

// Role is a named permission set users can be assigned to.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// AssignRoleRequest is the payload of the role-assignment action.
type AssignRoleRequest struct {
	RoleID string `json:"role_id"`
}

// CreateUserRequest is the payload for creating an operator account.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles,omitempty"`
}

// UpdateUserRequest is the payload for updating an operator account. Nil
// fields are left unchanged by the backend.
type UpdateUserRequest struct {
	Email    *string   `json:"email,omitempty"`
	FullName *string   `json:"full_name,omitempty"`
	Active   *bool     `json:"active,omitempty"`
	Roles    *[]string `json:"roles,omitempty"`
}
