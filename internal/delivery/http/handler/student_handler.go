package handler

import (
	"strings"

	"itapp/internal/delivery/http/dto"
	"itapp/internal/domain/job"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/response"
	ucauth "itapp/internal/usecase/auth"
	ucjob "itapp/internal/usecase/job"
	"itapp/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	accounts AccountUsecase
	profiles ProfileUsecase
	jobs     JobUsecase
	workflow WorkflowUsecase
	reports  ReportUsecase
}

func NewStudentHandler(accounts AccountUsecase, profiles ProfileUsecase, jobs JobUsecase, workflow WorkflowUsecase, reports ReportUsecase) *StudentHandler {
	return &StudentHandler{accounts: accounts, profiles: profiles, jobs: jobs, workflow: workflow, reports: reports}
}

type createStudentRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	MatriculationNumber string `json:"matriculationNumber"`
	School              string `json:"school"`
}

type jobIDRequest struct {
	JobID string `json:"jobId"`
}

type studentProfileRequest struct {
	FirstName         *string  `json:"firstName"`
	LastName          *string  `json:"lastName"`
	Phone             *string  `json:"phone"`
	Bio               *string  `json:"bio"`
	Skills            []string `json:"skills"`
	Goals             []string `json:"goals"`
	PreferredIndustry *string  `json:"preferredIndustry"`
	Searching         *bool    `json:"searching"`
}

func (h *StudentHandler) Create(c fiber.Ctx) error {
	var req createStudentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	acc, err := h.accounts.CreateStudent(c.Context(), ucauth.CreateStudentInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Password:            req.Password,
		MatriculationNumber: req.MatriculationNumber,
		School:              req.School,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Student account created", dto.StudentAccountResponse{
		Student: dto.FromStudent(acc.Student),
		Token:   acc.Token,
	})
}

func (h *StudentHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	res, err := h.accounts.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password, Student: true})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Login successful", dto.LoginResponse{
		Token: res.Token,
		User:  dto.FromPrincipal(res.Principal),
	})
}

func (h *StudentHandler) Apply(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req jobIDRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	jobID, err := parseUUID(req.JobID, "jobId")
	if err != nil {
		return err
	}

	app, err := h.workflow.Apply(c.Context(), p.ID, jobID)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.FromApplication(app))
}

func (h *StudentHandler) Save(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req jobIDRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	jobID, err := parseUUID(req.JobID, "jobId")
	if err != nil {
		return err
	}

	saved, err := h.workflow.Save(c.Context(), p.ID, jobID)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job saved", dto.FromSaved(saved))
}

func (h *StudentHandler) Unsave(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUID(c.Params("jobId"), "jobId")
	if err != nil {
		return err
	}
	if err := h.workflow.Unsave(c.Context(), p.ID, jobID); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Saved job removed", nil)
}

// Applications lists applied jobs, or saved jobs when ?saved=true.
func (h *StudentHandler) Applications(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	saved, err := parseQueryBool(c, "saved")
	if err != nil {
		return badRequest(err.Error(), err)
	}

	page, err := h.workflow.List(c.Context(), p.ID, saved != nil && *saved, q)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.List(c, response.MessageOK, dto.FromEntries(page.Entries), page.Total)
}

func (h *StudentHandler) SearchJobs(c fiber.Ctx) error {
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	minDur, err := parseQueryPositiveInt(c, "duration[start]")
	if err != nil {
		return badRequest(err.Error(), err)
	}
	maxDur, err := parseQueryPositiveInt(c, "duration[end]")
	if err != nil {
		return badRequest(err.Error(), err)
	}

	page, err := h.jobs.Search(c.Context(), ucjob.SearchInput{
		Field:       c.Query("field"),
		Location:    c.Query("location"),
		MinDuration: minDur,
		MaxDuration: maxDur,
		OrderBy:     c.Query("orderBy"),
		PageNumber:  q.PageNumber,
		Limit:       q.Limit,
		Date:        q.Date,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.FromJobs(page.Jobs), page.Total)
}

func (h *StudentHandler) Jobs(c fiber.Ctx) error {
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	var f job.ListFilter
	if raw := strings.TrimSpace(c.Query("companyId")); raw != "" {
		id, err := parseUUID(raw, "companyId")
		if err != nil {
			return err
		}
		f.CompanyID = &id
	}

	page, err := h.jobs.List(c.Context(), f, q)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.FromJobs(page.Jobs), page.Total)
}

func (h *StudentHandler) Profile(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	st, err := h.profiles.GetStudent(c.Context(), p.ID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromStudent(st))
}

// UpdateProfile accepts multipart/form-data with an optional profileImage and
// any number of documents, or a plain JSON body without files.
func (h *StudentHandler) UpdateProfile(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var in profile.StudentInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest("Invalid multipart form", err)
		}
		searching, err := formBool(form, "searching")
		if err != nil {
			return err
		}
		in = profile.StudentInput{
			FirstName:         formString(form, "firstName"),
			LastName:          formString(form, "lastName"),
			Phone:             formString(form, "phone"),
			Bio:               formString(form, "bio"),
			Skills:            formList(form, "skills"),
			Goals:             formList(form, "goals"),
			PreferredIndustry: formString(form, "preferredIndustry"),
			Searching:         searching,
			ProfileImage:      formFile(form, "profileImage"),
			Documents:         formFiles(form, "documents"),
		}
	} else {
		var req studentProfileRequest
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
		in = profile.StudentInput{
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			Bio:               req.Bio,
			Skills:            req.Skills,
			Goals:             req.Goals,
			PreferredIndustry: req.PreferredIndustry,
			Searching:         req.Searching,
		}
	}

	st, err := h.profiles.UpdateStudent(c.Context(), p.ID, in)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.FromStudent(st))
}

func (h *StudentHandler) CurrentJob(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	pl, err := h.workflow.CurrentPlacement(c.Context(), p.ID)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPlacement(pl))
}

func (h *StudentHandler) AdminData(c fiber.Ctx) error {
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	f, err := studentFilter(c)
	if err != nil {
		return err
	}
	page, err := h.reports.Students(c.Context(), f, q)
	if err != nil {
		return mapReportError(err)
	}
	return response.List(c, response.MessageOK, dto.FromStudents(page.Students), page.Total)
}

func (h *StudentHandler) AdminCount(c fiber.Ctx) error {
	f, err := studentFilter(c)
	if err != nil {
		return err
	}
	n, err := h.reports.CountStudents(c.Context(), f)
	if err != nil {
		return mapReportError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"count": n})
}

func studentFilter(c fiber.Ctx) (student.ListFilter, error) {
	searching, err := parseQueryBool(c, "searching")
	if err != nil {
		return student.ListFilter{}, badRequest(err.Error(), err)
	}
	return student.ListFilter{Searching: searching}, nil
}
