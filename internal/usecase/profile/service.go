package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"itapp/internal/domain/company"
	"itapp/internal/domain/student"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("profile not found")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUploadsUnavailable = errors.New("media uploads are not configured")
	ErrUploadFailed       = errors.New("media upload failed")
	ErrInternal           = errors.New("internal error")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// Uploader stores one object and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// File is an uploaded form file. Open is called once, right before upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type CompanyInput struct {
	Phone       *string
	Website     *string
	Address     *string
	Description *string
	Capacity    *int

	ProfileImage    *File
	BackgroundImage *File
}

type StudentInput struct {
	FirstName         *string
	LastName          *string
	Phone             *string
	Bio               *string
	Skills            []string
	Goals             []string
	PreferredIndustry *string
	Searching         *bool

	ProfileImage *File
	Documents    []File
}

type Service struct {
	companies company.Repository
	students  student.Repository
	uploader  Uploader
	logger    zerolog.Logger

	maxBytes      int64
	uploadTimeout time.Duration
}

func NewService(
	companies company.Repository,
	students student.Repository,
	uploader Uploader,
	maxBytes int64,
	uploadTimeout time.Duration,
	logger zerolog.Logger,
) *Service {
	return &Service{
		companies:     companies,
		students:      students,
		uploader:      uploader,
		logger:        logger,
		maxBytes:      maxBytes,
		uploadTimeout: uploadTimeout,
	}
}

func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return c, nil
}

func (s *Service) GetStudent(ctx context.Context, id uuid.UUID) (student.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrNotFound
		}
		return student.Student{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return st, nil
}

// UpdateCompany uploads the images first; the row is only written when every
// upload succeeded.
func (s *Service) UpdateCompany(ctx context.Context, id uuid.UUID, in CompanyInput) (company.Company, error) {
	if in.Capacity != nil && *in.Capacity < 0 {
		return company.Company{}, ErrInvalidInput
	}

	var files []uploadSlot
	if in.ProfileImage != nil {
		files = append(files, uploadSlot{file: *in.ProfileImage, key: objectKey("companies", id, "profile", in.ProfileImage.Name)})
	}
	if in.BackgroundImage != nil {
		files = append(files, uploadSlot{file: *in.BackgroundImage, key: objectKey("companies", id, "background", in.BackgroundImage.Name)})
	}

	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return company.Company{}, err
	}

	upd := company.ProfileUpdate{
		Phone:       trimmed(in.Phone),
		Website:     trimmed(in.Website),
		Address:     trimmed(in.Address),
		Description: trimmed(in.Description),
		Capacity:    in.Capacity,
	}
	i := 0
	if in.ProfileImage != nil {
		upd.ProfileImageURL = &urls[i]
		i++
	}
	if in.BackgroundImage != nil {
		upd.BackgroundImageURL = &urls[i]
	}

	c, err := s.companies.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return c, nil
}

// UpdateStudent appends uploaded documents to the ones already stored.
func (s *Service) UpdateStudent(ctx context.Context, id uuid.UUID, in StudentInput) (student.Student, error) {
	if (in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "") ||
		(in.LastName != nil && strings.TrimSpace(*in.LastName) == "") {
		return student.Student{}, ErrInvalidInput
	}

	var files []uploadSlot
	if in.ProfileImage != nil {
		files = append(files, uploadSlot{file: *in.ProfileImage, key: objectKey("students", id, "profile", in.ProfileImage.Name)})
	}
	for _, d := range in.Documents {
		files = append(files, uploadSlot{file: d, key: objectKey("students", id, "documents", d.Name)})
	}

	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return student.Student{}, err
	}

	upd := student.ProfileUpdate{
		FirstName:         trimmed(in.FirstName),
		LastName:          trimmed(in.LastName),
		Phone:             trimmed(in.Phone),
		Bio:               trimmed(in.Bio),
		Skills:            in.Skills,
		Goals:             in.Goals,
		PreferredIndustry: trimmed(in.PreferredIndustry),
		Searching:         in.Searching,
	}
	if in.ProfileImage != nil {
		upd.ProfileImageURL = &urls[0]
		urls = urls[1:]
	}
	upd.NewDocumentURLs = urls

	st, err := s.students.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrNotFound
		}
		return student.Student{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return st, nil
}

type uploadSlot struct {
	file File
	key  string
}

// uploadAll validates every file before sending any of them, then uploads
// sequentially under one deadline. The first failure aborts the batch.
func (s *Service) uploadAll(ctx context.Context, slots []uploadSlot) ([]string, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	for _, sl := range slots {
		if err := s.validate(sl.file); err != nil {
			return nil, err
		}
	}
	if s.uploader == nil {
		return nil, ErrUploadsUnavailable
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	urls := make([]string, 0, len(slots))
	for _, sl := range slots {
		url, err := s.upload(ctx, sl)
		if err != nil {
			s.logger.Error().Err(err).Str("key", sl.key).Msg("media upload failed")
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Service) upload(ctx context.Context, sl uploadSlot) (string, error) {
	rc, err := sl.file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.uploader.Put(ctx, sl.key, normalizeContentType(sl.file.ContentType), rc, sl.file.Size)
}

func (s *Service) validate(f File) error {
	if !allowedContentTypes[normalizeContentType(f.ContentType)] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Name)
	}
	if s.maxBytes > 0 && f.Size > s.maxBytes {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
	}
	if f.Open == nil {
		return fmt.Errorf("%w: %s has no content", ErrInvalidInput, f.Name)
	}
	return nil
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func objectKey(owner string, id uuid.UUID, kind, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("%s/%s/%s/%s%s", owner, id, kind, uuid.NewString(), ext)
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
