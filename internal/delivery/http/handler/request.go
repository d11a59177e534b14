package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"itapp/internal/delivery/http/middleware"
	"itapp/internal/domain/user"
	"itapp/internal/pkg/pagination"
	"itapp/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// parseQueryPositiveInt returns 0 when key is absent and rejects any present
// value below 1.
func parseQueryPositiveInt(c fiber.Ctx, key string) (int, error) {
	v, err := parseQueryIntStrict(c, key, 0)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(c.Query(key)) != "" && v < 1 {
		return 0, fmt.Errorf("%s must be >= 1", key)
	}
	return v, nil
}

func parseQueryBool(c fiber.Ctx, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &v, nil
}

// paginationQuery reads pageNumber, limit, orderBy, order and date. A missing
// pageNumber or limit falls back to the first page of DefaultLimit rows.
func paginationQuery(c fiber.Ctx) (pagination.Query, error) {
	page, err := parseQueryIntStrict(c, "pageNumber", 1)
	if err != nil {
		return pagination.Query{}, badRequest(err.Error(), err)
	}
	limit, err := parseQueryIntStrict(c, "limit", pagination.DefaultLimit)
	if err != nil {
		return pagination.Query{}, badRequest(err.Error(), err)
	}
	return pagination.Query{
		PageNumber: page,
		Limit:      limit,
		OrderBy:    c.Query("orderBy"),
		Order:      c.Query("order"),
		Date:       c.Query("date"),
	}, nil
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, badRequest(field+" must be a valid id", err)
	}
	return id, nil
}

func principal(c fiber.Ctx) (user.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return user.Principal{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return p, nil
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, cause)
}

func isMultipart(c fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// formString returns nil when key is absent so the column is left untouched.
func formString(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func formInt(form *multipart.Form, key string) (*int, error) {
	s := formString(form, key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, badRequest(key+" must be an integer", err)
	}
	return &v, nil
}

func formBool(form *multipart.Form, key string) (*bool, error) {
	s := formString(form, key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*s))
	if err != nil {
		return nil, badRequest(key+" must be true or false", err)
	}
	return &v, nil
}

// formList accepts repeated keys as well as one comma separated value.
func formList(form *multipart.Form, key string) []string {
	vals, ok := form.Value[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func formFiles(form *multipart.Form, key string) []profile.File {
	headers := form.File[key]
	out := make([]profile.File, 0, len(headers))
	for _, fh := range headers {
		out = append(out, toProfileFile(fh))
	}
	return out
}

func formFile(form *multipart.Form, key string) *profile.File {
	files := formFiles(form, key)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

func toProfileFile(fh *multipart.FileHeader) profile.File {
	return profile.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
