package handler

// CreateUserRequest is an administrator creating an account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,oneof=ADMIN STAFF RESIDENT"`
}

// UpdateUserRequest changes an account; omitted fields stay as they are
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Username *string `json:"username" binding:"omitempty,max=50"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN STAFF RESIDENT"`
	Active   *bool   `json:"active"`
}

// ResetPasswordRequest sets a new password for an account
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// UserListQuery is the query of the user listing
type UserListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	Role     string `form:"role" binding:"omitempty,oneof=ADMIN STAFF RESIDENT"`
	Active   *bool  `form:"active"`
}
