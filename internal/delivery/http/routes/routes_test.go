package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"itapp/internal/delivery/http/handler"
	"itapp/internal/delivery/http/middleware"
	"itapp/internal/domain/application"
	"itapp/internal/domain/company"
	"itapp/internal/domain/notification"
	"itapp/internal/domain/user"
	"itapp/internal/pkg/logger"
	"itapp/internal/pkg/pagination"
	ucapp "itapp/internal/usecase/application"
	ucauth "itapp/internal/usecase/auth"
	ucjob "itapp/internal/usecase/job"
	ucnotification "itapp/internal/usecase/notification"
	ucreport "itapp/internal/usecase/report"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var (
	studentID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	companyID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	adminID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	jobID     = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(_ context.Context, token string) (user.Principal, error) {
	switch token {
	case "student":
		return user.Principal{ID: studentID, Email: "ada@uni.edu", Role: user.RoleStudent, Name: "Ada Obi"}, nil
	case "company":
		return user.Principal{ID: companyID, Email: "hr@acme.io", Role: user.RoleCompany, Name: "Acme"}, nil
	case "admin":
		return user.Principal{ID: adminID, Email: "admin@itapp.io", Role: user.RoleAdmin}, nil
	case "expired":
		return user.Principal{}, ucauth.ErrTokenExpired
	default:
		return user.Principal{}, ucauth.ErrUnauthorized
	}
}

type fakeAccounts struct {
	handler.AccountUsecase
	signup func(in ucauth.SignupInput) (user.User, error)
	login  func(in ucauth.LoginInput) (ucauth.LoginResult, error)
}

func (f *fakeAccounts) Signup(_ context.Context, in ucauth.SignupInput) (user.User, error) {
	return f.signup(in)
}

func (f *fakeAccounts) Login(_ context.Context, in ucauth.LoginInput) (ucauth.LoginResult, error) {
	return f.login(in)
}

type fakeProfiles struct {
	handler.ProfileUsecase
	getCompanyCalls []uuid.UUID
}

func (f *fakeProfiles) GetCompany(_ context.Context, id uuid.UUID) (company.Company, error) {
	f.getCompanyCalls = append(f.getCompanyCalls, id)
	return company.Company{ID: id, Name: "Acme", Verified: true}, nil
}

type fakeJobs struct {
	handler.JobUsecase
	search ucjob.SearchInput
}

func (f *fakeJobs) Search(_ context.Context, in ucjob.SearchInput) (ucjob.Page, error) {
	f.search = in
	return ucjob.Page{}, nil
}

type fakeWorkflow struct {
	handler.WorkflowUsecase
	applyErr   error
	declineErr error
	listQuery  pagination.Query
	listSaved  bool
}

func (f *fakeWorkflow) Apply(_ context.Context, sid, jid uuid.UUID) (application.Application, error) {
	if f.applyErr != nil {
		return application.Application{}, f.applyErr
	}
	return application.Application{StudentID: sid, JobID: jid, CreatedAt: time.Now()}, nil
}

func (f *fakeWorkflow) Decline(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	return f.declineErr
}

func (f *fakeWorkflow) List(_ context.Context, _ uuid.UUID, saved bool, q pagination.Query) (ucapp.ListPage, error) {
	f.listSaved = saved
	f.listQuery = q
	if _, err := pagination.Resolve(q, nil); err != nil {
		return ucapp.ListPage{}, fmt.Errorf("%w: %v", ucapp.ErrInvalidInput, err)
	}
	return ucapp.ListPage{Total: 3}, nil
}

type fakeReports struct {
	handler.ReportUsecase
	err error
}

func (f *fakeReports) Accepted(context.Context, uuid.UUID, pagination.Query) (ucreport.ApplicantPage, error) {
	return ucreport.ApplicantPage{}, f.err
}

type fakeNotifications struct {
	handler.NotificationUsecase
}

func (fakeNotifications) Get(context.Context, uuid.UUID, uuid.UUID) (notification.Notification, error) {
	return notification.Notification{}, ucnotification.ErrNotFound
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testDeps struct {
	accounts      *fakeAccounts
	profiles      *fakeProfiles
	jobs          *fakeJobs
	workflow      *fakeWorkflow
	reports       *fakeReports
	notifications fakeNotifications
	db            fakePinger
}

func newDeps() *testDeps {
	return &testDeps{
		accounts: &fakeAccounts{},
		profiles: &fakeProfiles{},
		jobs:     &fakeJobs{},
		workflow: &fakeWorkflow{},
		reports:  &fakeReports{},
	}
}

func newTestApp(d *testDeps) *fiber.App {
	errMw := middleware.NewErrorMiddleware(logger.Nop())
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler})
	app.Use(errMw.Middleware())

	reg := &Registry{
		Health:         handler.NewHealthHandler(d.db, nil),
		Auth:           handler.NewAuthHandler(d.accounts),
		Company:        handler.NewCompanyHandler(d.accounts, d.profiles, d.jobs, d.workflow, d.reports),
		Student:        handler.NewStudentHandler(d.accounts, d.profiles, d.jobs, d.workflow, d.reports),
		Notification:   handler.NewNotificationHandler(d.notifications),
		AuthMiddleware: middleware.NewAuthMiddleware(fakeAuthenticator{}),
	}
	reg.Register(app)
	return app
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	TotalCount *int            `json:"totalCount"`
}

func do(t *testing.T, app *fiber.App, method, target, token, body string) (int, envelope, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s %s): %v", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope %q: %v", raw, err)
	}
	if env.StatusCode != resp.StatusCode {
		t.Fatalf("envelope statusCode=%d, http status=%d", env.StatusCode, resp.StatusCode)
	}
	return resp.StatusCode, env, string(raw)
}

func TestSignup_ReturnsCreatedUser(t *testing.T) {
	d := newDeps()
	d.accounts.signup = func(in ucauth.SignupInput) (user.User, error) {
		return user.User{ID: uuid.New(), Email: in.Email, Role: user.RoleUser}, nil
	}

	status, env, _ := do(t, newTestApp(d), http.MethodPost, "/auth/signup", "", `{"email":"a@b.io","password":"hunter22"}`)
	if status != http.StatusCreated {
		t.Fatalf("status=%d, want 201", status)
	}
	var got struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.Email != "a@b.io" || got.Role != "user" {
		t.Fatalf("data=%+v", got)
	}
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	d := newDeps()
	d.accounts.signup = func(ucauth.SignupInput) (user.User, error) {
		return user.User{}, ucauth.ErrEmailAlreadyRegistered
	}

	status, env, _ := do(t, newTestApp(d), http.MethodPost, "/auth/signup", "", `{"email":"a@b.io","password":"hunter22"}`)
	if status != http.StatusConflict || env.Error != "Conflict" {
		t.Fatalf("status=%d error=%q, want 409 Conflict", status, env.Error)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	d := newDeps()
	d.accounts.login = func(ucauth.LoginInput) (ucauth.LoginResult, error) {
		return ucauth.LoginResult{}, ucauth.ErrInvalidCredentials
	}

	status, env, _ := do(t, newTestApp(d), http.MethodPost, "/auth/login", "", `{"email":"a@b.io","password":"nope"}`)
	if status != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", status)
	}
	if env.Message != "Invalid credentials" {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestStudentLogin_SetsStudentFlag(t *testing.T) {
	d := newDeps()
	var seen ucauth.LoginInput
	d.accounts.login = func(in ucauth.LoginInput) (ucauth.LoginResult, error) {
		seen = in
		return ucauth.LoginResult{Token: "tok", Principal: user.Principal{ID: studentID, Role: user.RoleStudent}}, nil
	}

	status, _, _ := do(t, newTestApp(d), http.MethodPost, "/students/login", "", `{"email":"ada@uni.edu","password":"pw123456"}`)
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}
	if !seen.Student {
		t.Fatalf("expected student login, got %+v", seen)
	}
}

func TestMe(t *testing.T) {
	app := newTestApp(newDeps())

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "no token", token: "", status: http.StatusUnauthorized},
		{name: "bad token", token: "garbage", status: http.StatusUnauthorized},
		{name: "expired", token: "expired", status: http.StatusUnauthorized},
		{name: "student", token: "student", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, _ := do(t, app, http.MethodGet, "/auth/me", tt.token, "")
			if status != tt.status {
				t.Fatalf("status=%d, want %d", status, tt.status)
			}
			if tt.status == http.StatusOK && !strings.Contains(string(env.Data), `"role":"student"`) {
				t.Fatalf("data=%s", env.Data)
			}
		})
	}
}

func TestRoleGuards(t *testing.T) {
	app := newTestApp(newDeps())

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
	}{
		{name: "company applies", method: http.MethodPost, path: "/students/job/apply", token: "company", body: `{"jobId":"` + jobID.String() + `"}`},
		{name: "student reads accepted applicants", method: http.MethodGet, path: "/company/applicants/accepted", token: "student"},
		{name: "company lists students", method: http.MethodGet, path: "/students/admin/data", token: "company"},
		{name: "admin reads notifications", method: http.MethodGet, path: "/notifications/count", token: "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, _ := do(t, app, tt.method, tt.path, tt.token, tt.body)
			if status != http.StatusForbidden || env.Error != "Forbidden" {
				t.Fatalf("status=%d error=%q, want 403 Forbidden", status, env.Error)
			}
		})
	}
}

func TestApply(t *testing.T) {
	body := `{"jobId":"` + jobID.String() + `"}`

	t.Run("created", func(t *testing.T) {
		status, _, _ := do(t, newTestApp(newDeps()), http.MethodPost, "/students/job/apply", "student", body)
		if status != http.StatusCreated {
			t.Fatalf("status=%d, want 201", status)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		d := newDeps()
		d.workflow.applyErr = ucapp.ErrAlreadyApplied
		status, env, _ := do(t, newTestApp(d), http.MethodPost, "/students/job/apply", "student", body)
		if status != http.StatusConflict {
			t.Fatalf("status=%d, want 409", status)
		}
		if env.Message != ucapp.ErrAlreadyApplied.Error() {
			t.Fatalf("message=%q", env.Message)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		d := newDeps()
		d.workflow.applyErr = ucapp.ErrJobNotFound
		status, _, _ := do(t, newTestApp(d), http.MethodPost, "/students/job/apply", "student", body)
		if status != http.StatusNotFound {
			t.Fatalf("status=%d, want 404", status)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		status, _, _ := do(t, newTestApp(newDeps()), http.MethodPost, "/students/job/apply", "student", `{"jobId":"nope"}`)
		if status != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", status)
		}
	})
}

func TestDecline_AfterAcceptIsForbidden(t *testing.T) {
	d := newDeps()
	d.workflow.declineErr = ucapp.ErrDeclineNotAllowed
	body := `{"studentId":"` + studentID.String() + `","jobId":"` + jobID.String() + `"}`

	status, env, _ := do(t, newTestApp(d), http.MethodPost, "/company/applicants/decline", "company", body)
	if status != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", status)
	}
	if env.Message != ucapp.ErrDeclineNotAllowed.Error() {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestApplications_Pagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		d := newDeps()
		status, env, _ := do(t, newTestApp(d), http.MethodGet, "/students/applications?saved=true", "student", "")
		if status != http.StatusOK {
			t.Fatalf("status=%d, want 200", status)
		}
		if !d.workflow.listSaved {
			t.Fatalf("expected saved listing")
		}
		if d.workflow.listQuery.PageNumber != 1 || d.workflow.listQuery.Limit != pagination.DefaultLimit {
			t.Fatalf("query=%+v", d.workflow.listQuery)
		}
		if env.TotalCount == nil || *env.TotalCount != 3 {
			t.Fatalf("totalCount=%v, want 3", env.TotalCount)
		}
	})

	for _, target := range []string{
		"/students/applications?pageNumber=abc",
		"/students/applications?pageNumber=0&limit=10",
		"/students/applications?limit=-5",
		"/students/applications?saved=maybe",
	} {
		t.Run(target, func(t *testing.T) {
			status, env, _ := do(t, newTestApp(newDeps()), http.MethodGet, target, "student", "")
			if status != http.StatusBadRequest || env.Error != "BadRequest" {
				t.Fatalf("status=%d error=%q, want 400 BadRequest", status, env.Error)
			}
		})
	}
}

func TestSearchJobs_ReadsFilters(t *testing.T) {
	d := newDeps()
	target := "/students/search/jobs?field=Engineering&location=Lagos&duration%5Bstart%5D=3&duration%5Bend%5D=6&orderBy=DESC&pageNumber=2&limit=5"

	status, _, _ := do(t, newTestApp(d), http.MethodGet, target, "company", "")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}
	want := ucjob.SearchInput{
		Field:       "Engineering",
		Location:    "Lagos",
		MinDuration: 3,
		MaxDuration: 6,
		OrderBy:     "DESC",
		PageNumber:  2,
		Limit:       5,
	}
	if d.jobs.search != want {
		t.Fatalf("search=%+v, want %+v", d.jobs.search, want)
	}
}

func TestSearchJobs_RejectsDurationBelowOne(t *testing.T) {
	for _, q := range []string{
		"duration%5Bstart%5D=0",
		"duration%5Bend%5D=0",
		"duration%5Bstart%5D=-2",
		"duration%5Bend%5D=three",
	} {
		t.Run(q, func(t *testing.T) {
			d := newDeps()
			status, env, _ := do(t, newTestApp(d), http.MethodGet, "/students/search/jobs?"+q, "student", "")
			if status != http.StatusBadRequest || env.Error != "BadRequest" {
				t.Fatalf("status=%d error=%q, want 400 BadRequest", status, env.Error)
			}
			if d.jobs.search != (ucjob.SearchInput{}) {
				t.Fatalf("search must not run, got %+v", d.jobs.search)
			}
		})
	}
}

func TestCompanyProfile_StaticRouteWinsOverID(t *testing.T) {
	d := newDeps()

	status, _, _ := do(t, newTestApp(d), http.MethodGet, "/company/profile", "company", "")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}
	if len(d.profiles.getCompanyCalls) != 1 || d.profiles.getCompanyCalls[0] != companyID {
		t.Fatalf("calls=%v, want the caller's own company", d.profiles.getCompanyCalls)
	}

	other := uuid.New()
	status, _, _ = do(t, newTestApp(d), http.MethodGet, "/company/"+other.String(), "student", "")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}
	if d.profiles.getCompanyCalls[1] != other {
		t.Fatalf("calls=%v", d.profiles.getCompanyCalls)
	}
}

func TestNotification_NotFound(t *testing.T) {
	status, env, _ := do(t, newTestApp(newDeps()), http.MethodGet, "/notifications/"+uuid.NewString(), "student", "")
	if status != http.StatusNotFound || env.Error != "NotFound" {
		t.Fatalf("status=%d error=%q, want 404 NotFound", status, env.Error)
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	d := newDeps()
	d.reports.err = fmt.Errorf("%w: %v", ucreport.ErrInternal, errors.New("pq: relation exploded"))

	status, env, raw := do(t, newTestApp(d), http.MethodGet, "/company/applicants/accepted", "company", "")
	if status != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", status)
	}
	if strings.Contains(raw, "exploded") {
		t.Fatalf("cause leaked: %s", raw)
	}
	if env.Error != "Internal" {
		t.Fatalf("error=%q", env.Error)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	// fakeWorkflow does not implement Save, so the embedded nil interface panics.
	body := `{"jobId":"` + jobID.String() + `"}`
	status, env, _ := do(t, newTestApp(newDeps()), http.MethodPost, "/students/saved/applications", "student", body)
	if status != http.StatusInternalServerError || env.Message != "internal server error" {
		t.Fatalf("status=%d message=%q", status, env.Message)
	}
}

func TestHealth(t *testing.T) {
	d := newDeps()
	status, _, _ := do(t, newTestApp(d), http.MethodGet, "/health", "", "")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}

	d.db = fakePinger{err: errors.New("connection refused")}
	status, env, _ := do(t, newTestApp(d), http.MethodGet, "/health", "", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503", status)
	}
	if !strings.Contains(string(env.Data), `"database":"down"`) {
		t.Fatalf("data=%s", env.Data)
	}
}
