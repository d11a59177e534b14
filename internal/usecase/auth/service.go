package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"itapp/internal/domain/company"
	"itapp/internal/domain/student"
	"itapp/internal/domain/user"
	"itapp/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrTokenExpired           = errors.New("token expired")
	ErrCompanyNotVerified     = errors.New("company is not verified")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrInternal               = errors.New("internal error")
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

type Mailer interface {
	Welcome(ctx context.Context, to, name string) error
}

type SignupInput struct {
	Email    string
	Password string
}

// LoginInput authenticates against the users table, or the students table
// when Student is set.
type LoginInput struct {
	Email    string
	Password string
	Student  bool
}

type LoginResult struct {
	Token     string
	Principal user.Principal
}

type CreateStudentInput struct {
	FirstName           string
	LastName            string
	Email               string
	Password            string
	MatriculationNumber string
	School              string
}

type StudentAccount struct {
	Student student.Student
	Token   string
}

type CreateCompanyInput struct {
	Name               string
	Email              string
	Password           string
	RegistrationNumber string
	YearFounded        string
	Address            string
}

type CompanyAccount struct {
	Company company.Company
	Token   string
}

type Service struct {
	users     user.Repository
	students  student.Repository
	companies company.Repository
	tokens    jwt.Service
	mailer    Mailer
	logger    zerolog.Logger

	hashCost int
}

func NewService(
	users user.Repository,
	students student.Repository,
	companies company.Repository,
	tokens jwt.Service,
	mailer Mailer,
	logger zerolog.Logger,
) *Service {
	return &Service{
		users:     users,
		students:  students,
		companies: companies,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if !isValidEmail(email) || !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, internal(err)
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, internal(err)
	}
	return sanitizeUser(created), nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	if in.Student {
		st, err := s.students.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				return LoginResult{}, ErrInvalidCredentials
			}
			return LoginResult{}, internal(err)
		}
		if !checkPassword(st.PasswordHash, in.Password) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return s.issue(studentPrincipal(st))
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, internal(err)
	}
	if !checkPassword(u.PasswordHash, in.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}
	return s.issue(userPrincipal(u))
}

func (s *Service) CreateStudent(ctx context.Context, in CreateStudentInput) (StudentAccount, error) {
	email := normalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	matric := strings.TrimSpace(in.MatriculationNumber)
	school := strings.TrimSpace(in.School)
	if !isValidEmail(email) || !isValidPassword(in.Password) || first == "" || last == "" || matric == "" || school == "" {
		return StudentAccount{}, ErrInvalidInput
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return StudentAccount{}, err
	}

	st := student.Student{
		ID:                  uuid.New(),
		MatriculationNumber: matric,
		School:              school,
		FirstName:           first,
		LastName:            last,
		Email:               email,
		PasswordHash:        hash,
	}
	if err := s.students.Create(ctx, st); err != nil {
		if errors.Is(err, student.ErrEmailTaken) {
			return StudentAccount{}, ErrEmailAlreadyRegistered
		}
		return StudentAccount{}, internal(err)
	}

	created, err := s.students.GetByID(ctx, st.ID)
	if err != nil {
		return StudentAccount{}, internal(err)
	}

	res, err := s.issue(studentPrincipal(created))
	if err != nil {
		return StudentAccount{}, err
	}
	s.welcome(ctx, created.Email, created.FullName())

	created.PasswordHash = ""
	return StudentAccount{Student: created, Token: res.Token}, nil
}

func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (CompanyAccount, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	reg := strings.TrimSpace(in.RegistrationNumber)
	year := strings.TrimSpace(in.YearFounded)
	addr := strings.TrimSpace(in.Address)
	if !isValidEmail(email) || !isValidPassword(in.Password) || name == "" || reg == "" || year == "" || addr == "" {
		return CompanyAccount{}, ErrInvalidInput
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return CompanyAccount{}, err
	}

	c := company.Company{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		RegistrationNumber: reg,
		YearFounded:        year,
		Address:            addr,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, company.ErrEmailTaken) {
			return CompanyAccount{}, ErrEmailAlreadyRegistered
		}
		return CompanyAccount{}, internal(err)
	}

	created, err := s.companies.GetByID(ctx, c.ID)
	if err != nil {
		return CompanyAccount{}, internal(err)
	}

	res, err := s.issue(companyPrincipal(created))
	if err != nil {
		return CompanyAccount{}, err
	}
	s.welcome(ctx, created.Email, created.Name)

	created.PasswordHash = ""
	return CompanyAccount{Company: created, Token: res.Token}, nil
}

// CompanyLogin checks the password before the verification flag so an
// unverified company is only revealed to its owner.
func (s *Service) CompanyLogin(ctx context.Context, in LoginInput) (CompanyAccount, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return CompanyAccount{}, ErrInvalidCredentials
	}

	c, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return CompanyAccount{}, ErrInvalidCredentials
		}
		return CompanyAccount{}, internal(err)
	}
	if !checkPassword(c.PasswordHash, in.Password) {
		return CompanyAccount{}, ErrInvalidCredentials
	}
	if !c.Verified {
		return CompanyAccount{}, ErrCompanyNotVerified
	}

	res, err := s.issue(companyPrincipal(c))
	if err != nil {
		return CompanyAccount{}, err
	}
	c.PasswordHash = ""
	return CompanyAccount{Company: c, Token: res.Token}, nil
}

func (s *Service) VerifyCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := s.companies.SetVerified(ctx, id, true)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, internal(err)
	}
	c.PasswordHash = ""
	return c, nil
}

// Authenticate validates token and loads the caller from the table its role
// lives in, so deleted accounts stop authenticating immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (user.Principal, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.Principal{}, ErrTokenExpired
		}
		return user.Principal{}, ErrUnauthorized
	}

	switch user.Role(claims.Role) {
	case user.RoleStudent:
		st, err := s.students.GetByID(ctx, claims.UserID)
		if err != nil {
			return user.Principal{}, lookupErr(err, student.ErrNotFound)
		}
		return studentPrincipal(st), nil

	case user.RoleCompany:
		c, err := s.companies.GetByID(ctx, claims.UserID)
		if err != nil {
			return user.Principal{}, lookupErr(err, company.ErrNotFound)
		}
		return companyPrincipal(c), nil

	case user.RoleUser, user.RoleAdmin:
		u, err := s.users.GetByID(ctx, claims.UserID)
		if err != nil {
			return user.Principal{}, lookupErr(err, user.ErrNotFound)
		}
		if string(u.Role) != claims.Role {
			return user.Principal{}, ErrUnauthorized
		}
		return userPrincipal(u), nil

	default:
		return user.Principal{}, ErrUnauthorized
	}
}

// EnsureAdmin creates the bootstrap administrator when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if !isValidEmail(email) || !isValidPassword(password) {
		return false, ErrInvalidInput
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != user.RoleAdmin {
			return false, fmt.Errorf("%w: %s is registered with role %s", ErrEmailAlreadyRegistered, email, existing.Role)
		}
		return false, nil
	case !errors.Is(err, user.ErrNotFound):
		return false, internal(err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return false, err
	}
	err = s.users.Create(ctx, user.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: user.RoleAdmin})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return false, nil
		}
		return false, internal(err)
	}
	return true, nil
}

func (s *Service) issue(p user.Principal) (LoginResult, error) {
	token, err := s.tokens.Generate(p.ID, p.Email, string(p.Role))
	if err != nil {
		return LoginResult{}, internal(err)
	}
	return LoginResult{Token: token, Principal: p}, nil
}

func (s *Service) welcome(ctx context.Context, to, name string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Welcome(ctx, to, name); err != nil {
		s.logger.Warn().Err(err).Str("to", to).Msg("welcome email failed")
	}
}

func (s *Service) hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrInvalidInput
		}
		return "", internal(err)
	}
	return string(hash), nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func lookupErr(err, notFound error) error {
	if errors.Is(err, notFound) {
		return ErrUnauthorized
	}
	return internal(err)
}

func internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func studentPrincipal(st student.Student) user.Principal {
	p := user.Principal{
		ID:                  st.ID,
		Email:               st.Email,
		Role:                user.RoleStudent,
		Name:                st.FullName(),
		MatriculationNumber: st.MatriculationNumber,
	}
	if st.Phone != nil {
		p.Phone = *st.Phone
	}
	return p
}

func companyPrincipal(c company.Company) user.Principal {
	id := c.ID
	p := user.Principal{
		ID:        c.ID,
		Email:     c.Email,
		Role:      user.RoleCompany,
		Name:      c.Name,
		CompanyID: &id,
	}
	if c.Phone != nil {
		p.Phone = *c.Phone
	}
	return p
}

func userPrincipal(u user.User) user.Principal {
	return user.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength && len(pw) <= maxPasswordBytes
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
