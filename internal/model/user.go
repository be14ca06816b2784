package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleKitchen Role = "kitchen"
	RoleWaiter  Role = "waiter"
)

type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type AuthState struct {
	User          *AuthUser `json:"user,omitempty"`
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
}
