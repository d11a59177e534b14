package handler

import (
	"context"

	"itapp/internal/delivery/http/dto"
	"itapp/internal/domain/company"
	"itapp/internal/domain/user"
	"itapp/internal/pkg/response"
	ucauth "itapp/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AccountUsecase covers sign up, login and account creation for every role.
type AccountUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (user.User, error)
	Login(ctx context.Context, in ucauth.LoginInput) (ucauth.LoginResult, error)
	CreateStudent(ctx context.Context, in ucauth.CreateStudentInput) (ucauth.StudentAccount, error)
	CreateCompany(ctx context.Context, in ucauth.CreateCompanyInput) (ucauth.CompanyAccount, error)
	CompanyLogin(ctx context.Context, in ucauth.LoginInput) (ucauth.CompanyAccount, error)
	VerifyCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
}

type AuthHandler struct {
	uc AccountUsecase
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Student  bool   `json:"student"`
}

func NewAuthHandler(uc AccountUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	usr, err := h.uc.Signup(c.Context(), ucauth.SignupInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Account created", dto.FromUser(usr))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password, Student: req.Student})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Login successful", dto.LoginResponse{
		Token: res.Token,
		User:  dto.FromPrincipal(res.Principal),
	})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPrincipal(p))
}
