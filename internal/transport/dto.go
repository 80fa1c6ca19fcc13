package transport

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,password"`
	IsAdmin  *bool  `json:"is_admin" validate:"omitempty"`
}

// LoginRequest only checks presence. The strength rules apply at
// registration; login failures stay deliberately vague.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateBookRequest struct {
	Title string `json:"title" validate:"required"`
	ISBN  string `json:"isbn"  validate:"required"`
}

type UpdateBookRequest struct {
	Title string `json:"title" validate:"required"`
}
