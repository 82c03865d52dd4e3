package service

import (
	"context"
	"errors"
	"io"

	"github.com/civicreport/civicreport-go/internal/model"
	"github.com/civicreport/civicreport-go/internal/storage"
)

var (
	ErrLocationRequired    = errors.New("location is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrPhotoRequired       = errors.New("photo is required")
)

// ReportStore is the report persistence interface required by ReportService.
// Implemented by repository.ReportRepository.
type ReportStore interface {
	Create(ctx context.Context, report *model.Report) error
	ListNewestFirst(ctx context.Context) ([]model.Report, error)
}

// PhotoSaver persists an uploaded photo and returns its store-relative path.
// Implemented by storage.PhotoStore.
type PhotoSaver interface {
	Save(src io.Reader, originalName string) (string, error)
}

// SubmitReportInput carries the parsed multipart fields of a report
// submission. Photo is nil when no file was attached.
type SubmitReportInput struct {
	Location    string
	Description string
	Photo       io.Reader
	PhotoName   string
}

// ReportService handles report submission and the feed listing.
type ReportService struct {
	store  ReportStore
	photos PhotoSaver
}

// NewReportService creates a new ReportService.
func NewReportService(store ReportStore, photos PhotoSaver) *ReportService {
	return &ReportService{store: store, photos: photos}
}

// Submit validates the submission, stores the photo and records the report.
func (s *ReportService) Submit(ctx context.Context, in SubmitReportInput) error {
	if in.Location == "" {
		return ErrLocationRequired
	}
	if in.Description == "" {
		return ErrDescriptionRequired
	}
	if in.Photo == nil {
		return ErrPhotoRequired
	}

	path, err := s.photos.Save(in.Photo, in.PhotoName)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyPhoto) {
			return ErrPhotoRequired
		}
		return err
	}
	if path == "" {
		return ErrPhotoRequired
	}

	report := &model.Report{
		PhotoPath:   path,
		Location:    in.Location,
		Description: in.Description,
	}

	return s.store.Create(ctx, report)
}

// List returns all reports, newest first.
func (s *ReportService) List(ctx context.Context) ([]model.ReportResponse, error) {
	reports, err := s.store.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.ReportResponse, 0, len(reports))
	for _, rep := range reports {
		resp = append(resp, model.ReportResponse{
			ID:          rep.ID,
			PhotoPath:   rep.PhotoPath,
			Location:    rep.Location,
			Description: rep.Description,
			CreatedAt:   rep.CreatedAt,
		})
	}

	return resp, nil
}
