package dto

import (
	"time"

	"itapp/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

// MeResponse is the caller as resolved from the table owning its role.
type MeResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name,omitempty"`
	MatriculationNumber string     `json:"matriculationNumber,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Role                string     `json:"role"`
	CompanyID           *uuid.UUID `json:"companyId,omitempty"`
}

func FromPrincipal(p user.Principal) MeResponse {
	return MeResponse{
		ID:                  p.ID,
		Email:               p.Email,
		Name:                p.Name,
		MatriculationNumber: p.MatriculationNumber,
		Phone:               p.Phone,
		Role:                string(p.Role),
		CompanyID:           p.CompanyID,
	}
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  MeResponse `json:"user"`
}
