package dto

type CreateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ReactivateUserRequest struct {
	Password string `json:"password"`
}

type ForceCreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
