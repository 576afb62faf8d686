package dto

type CreateUserDTO struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"required,oneof=admin inspector technician"`
}

type UserDTO struct {
	ID        uint64 `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type ShortUserDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
}
