package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/civicreport/civicreport-go/internal/service"
)

// ReportHandler handles HTTP requests for report submission and the feed.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// HandleSubmit handles POST /submit-report multipart requests. On success
// the client is redirected to the feed page.
func (h *ReportHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	in := service.SubmitReportInput{
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		in.Photo = file
		in.PhotoName = header.Filename
	}

	if err := h.service.Submit(r.Context(), in); err != nil {
		switch {
		case errors.Is(err, service.ErrLocationRequired),
			errors.Is(err, service.ErrDescriptionRequired),
			errors.Is(err, service.ErrPhotoRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("storing report failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	http.Redirect(w, r, "/feed.html", http.StatusSeeOther)
}

// HandleFeed handles GET /api/reports requests, newest report first.
func (h *ReportHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("listing reports failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, reports)
}
