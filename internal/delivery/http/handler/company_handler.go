package handler

import (
	"itapp/internal/delivery/http/dto"
	"itapp/internal/domain/job"
	"itapp/internal/pkg/response"
	ucauth "itapp/internal/usecase/auth"
	ucjob "itapp/internal/usecase/job"
	"itapp/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	accounts AccountUsecase
	profiles ProfileUsecase
	jobs     JobUsecase
	workflow WorkflowUsecase
	reports  ReportUsecase
}

func NewCompanyHandler(accounts AccountUsecase, profiles ProfileUsecase, jobs JobUsecase, workflow WorkflowUsecase, reports ReportUsecase) *CompanyHandler {
	return &CompanyHandler{accounts: accounts, profiles: profiles, jobs: jobs, workflow: workflow, reports: reports}
}

type createCompanyRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	RegistrationNumber string `json:"registrationNumber"`
	YearFounded        string `json:"yearFounded"`
	Address            string `json:"address"`
}

type companyProfileRequest struct {
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
}

type jobRequest struct {
	Title          *string `json:"title"`
	Level          *string `json:"level"`
	DurationMonths *int    `json:"durationMonths"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	Description    *string `json:"description"`
	Industry       *string `json:"industry"`
}

type applicantRequest struct {
	StudentID string `json:"studentId"`
	JobID     string `json:"jobId"`
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req createCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	acc, err := h.accounts.CreateCompany(c.Context(), ucauth.CreateCompanyInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		RegistrationNumber: req.RegistrationNumber,
		YearFounded:        req.YearFounded,
		Address:            req.Address,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Company account created", dto.CompanyAccountResponse{
		Company: dto.FromCompany(acc.Company),
		Token:   acc.Token,
	})
}

func (h *CompanyHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	acc, err := h.accounts.CompanyLogin(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Login successful", dto.CompanyAccountResponse{
		Company: dto.FromCompany(acc.Company),
		Token:   acc.Token,
	})
}

func (h *CompanyHandler) Profile(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	co, err := h.profiles.GetCompany(c.Context(), p.ID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompany(co))
}

// UpdateProfile accepts multipart/form-data with optional profileImage and
// backgroundImage files, or a plain JSON body without files.
func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var in profile.CompanyInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest("Invalid multipart form", err)
		}
		capacity, err := formInt(form, "capacity")
		if err != nil {
			return err
		}
		in = profile.CompanyInput{
			Phone:           formString(form, "phone"),
			Website:         formString(form, "website"),
			Address:         formString(form, "address"),
			Description:     formString(form, "description"),
			Capacity:        capacity,
			ProfileImage:    formFile(form, "profileImage"),
			BackgroundImage: formFile(form, "backgroundImage"),
		}
	} else {
		var req companyProfileRequest
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
		in = profile.CompanyInput{
			Phone:       req.Phone,
			Website:     req.Website,
			Address:     req.Address,
			Description: req.Description,
			Capacity:    req.Capacity,
		}
	}

	co, err := h.profiles.UpdateCompany(c.Context(), p.ID, in)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.FromCompany(co))
}

func (h *CompanyHandler) GetByID(c fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	co, err := h.profiles.GetCompany(c.Context(), id)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompany(co))
}

func (h *CompanyHandler) Jobs(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	page, err := h.jobs.ListForCompany(c.Context(), p.ID, q)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.FromJobs(page.Jobs), page.Total)
}

func (h *CompanyHandler) CreateJob(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	j, err := h.jobs.Create(c.Context(), p.ID, ucjob.CreateInput{
		Title:          deref(req.Title),
		Level:          deref(req.Level),
		DurationMonths: derefInt(req.DurationMonths),
		Address:        deref(req.Address),
		City:           deref(req.City),
		State:          deref(req.State),
		Description:    deref(req.Description),
		Industry:       deref(req.Industry),
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.FromJob(j))
}

func (h *CompanyHandler) UpdateJob(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUID(c.Params("jobId"), "jobId")
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	j, err := h.jobs.Update(c.Context(), p.ID, jobID, job.Patch{
		Title:          req.Title,
		Level:          req.Level,
		DurationMonths: req.DurationMonths,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Description:    req.Description,
		Industry:       req.Industry,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.FromJob(j))
}

func (h *CompanyHandler) AcceptedApplicants(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	page, err := h.reports.Accepted(c.Context(), p.ID, q)
	if err != nil {
		return mapReportError(err)
	}
	return response.List(c, response.MessageOK, dto.FromApplicants(page.Applicants), page.Total)
}

func (h *CompanyHandler) ShortlistedApplicants(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	page, err := h.reports.Shortlisted(c.Context(), p.ID, q)
	if err != nil {
		return mapReportError(err)
	}
	return response.List(c, response.MessageOK, dto.FromApplicants(page.Applicants), page.Total)
}

func (h *CompanyHandler) ApplicantsByCategory(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	res, err := h.reports.ByCategory(c.Context(), p.ID)
	if err != nil {
		return mapReportError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromByCategory(res))
}

func (h *CompanyHandler) Accept(c fiber.Ctx) error {
	p, req, err := h.applicantRequest(c)
	if err != nil {
		return err
	}
	acc, err := h.workflow.Accept(c.Context(), p, req.student, req.job)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Student accepted", dto.FromAccepted(acc))
}

func (h *CompanyHandler) Shortlist(c fiber.Ctx) error {
	p, req, err := h.applicantRequest(c)
	if err != nil {
		return err
	}
	sl, err := h.workflow.Shortlist(c.Context(), p, req.student, req.job)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Student shortlisted", dto.FromShortlisted(sl))
}

func (h *CompanyHandler) Decline(c fiber.Ctx) error {
	p, req, err := h.applicantRequest(c)
	if err != nil {
		return err
	}
	if err := h.workflow.Decline(c.Context(), p, req.student, req.job); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application declined", nil)
}

func (h *CompanyHandler) AdminList(c fiber.Ctx) error {
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	page, err := h.reports.Companies(c.Context(), q)
	if err != nil {
		return mapReportError(err)
	}
	return response.List(c, response.MessageOK, dto.FromCompanies(page.Companies), page.Total)
}

func (h *CompanyHandler) AdminVerify(c fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	co, err := h.accounts.VerifyCompany(c.Context(), id)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company verified", dto.FromCompany(co))
}

type applicantIDs struct {
	student uuid.UUID
	job     uuid.UUID
}

// applicantRequest returns the calling company's id and the pair named in the
// body.
func (h *CompanyHandler) applicantRequest(c fiber.Ctx) (uuid.UUID, applicantIDs, error) {
	p, err := principal(c)
	if err != nil {
		return uuid.Nil, applicantIDs{}, err
	}
	var req applicantRequest
	if err := c.Bind().Body(&req); err != nil {
		return uuid.Nil, applicantIDs{}, badRequest("Invalid request payload", err)
	}
	studentID, err := parseUUID(req.StudentID, "studentId")
	if err != nil {
		return uuid.Nil, applicantIDs{}, err
	}
	jobID, err := parseUUID(req.JobID, "jobId")
	if err != nil {
		return uuid.Nil, applicantIDs{}, err
	}
	return p.ID, applicantIDs{student: studentID, job: jobID}, nil
}
