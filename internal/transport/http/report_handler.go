package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"pcreport/internal/config"
	"pcreport/internal/dataprocessing"
	apierrors "pcreport/internal/errors"
	"pcreport/internal/services"
	"pcreport/internal/validation"
	"pcreport/pkg/contracts/domain"
)

// ReportHandler handles production report HTTP requests with RFC 7807
// compliant errors.
type ReportHandler struct {
	service      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/analyze", h.Analyze)
	r.Post("/upload", h.Upload)

	r.Get("/records", h.GetRecords)
	r.Delete("/records", h.ResetRecords)
	r.Get("/dates", h.GetDates)
	r.Get("/summary", h.GetSummary)
	r.Get("/progress", h.GetProgress)
	r.Get("/runs/last", h.GetLastRun)

	r.Get("/export/excel", h.DownloadWorkbook)

	return r
}

// analyzeRequest is the body of POST /api/reports/analyze.
type analyzeRequest struct {
	// Dir overrides the configured input directory.
	Dir string `json:"dir"`
	// Recursive walks vendor month folders under the input directory.
	Recursive bool `json:"recursive"`
	// Vendor forces a vendor profile instead of filename detection.
	Vendor string `json:"vendor" validate:"omitempty,oneof=jinsungpc isue esue_yeoju jisan narapc busanbgf"`
}

// Analyze handles POST /api/reports/analyze: run a batch extraction over
// the report files on disk.
func (h *ReportHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req analyzeRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("vendor", err.Error()))
		return
	}

	vendor, err := h.service.ResolveVendor(req.Vendor)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnknownVendor)
		return
	}

	h.logger.InfoContext(r.Context(), "batch analysis requested",
		slog.String("request_id", reqID),
		slog.String("dir", req.Dir),
		slog.Bool("recursive", req.Recursive),
		slog.String("vendor", string(vendor)))

	run, err := h.service.AnalyzeDirectory(r.Context(), req.Dir, req.Recursive, vendor)
	if err != nil {
		if errors.Is(err, services.ErrNoFilesFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrNoFilesSelected)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"run":    run,
	})
}

// Upload handles POST /api/reports/upload: analyze a single uploaded
// workbook and merge its records into the current set.
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("report")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("report", "A report file upload is required"))
		return
	}
	defer file.Close()

	if err := validation.CheckReportFileName(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("report", err.Error()))
		return
	}

	vendor, err := h.service.ResolveVendor(r.FormValue("vendor"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnknownVendor)
		return
	}

	result, err := h.service.AnalyzeUpload(r.Context(), file, header.Filename, vendor)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ParsingFailedError(header.Filename, err))
		return
	}

	h.logger.InfoContext(r.Context(), "upload processed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("file", header.Filename),
		slog.String("vendor", string(result.Vendor)),
		slog.Int("records", len(result.Records)))

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"result": result,
	})
}

// GetRecords handles GET /api/reports/records with date, assembly, sort
// and order query parameters.
func (h *ReportHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := h.filterFromQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	key := dataprocessing.SortKey(r.URL.Query().Get("sort"))
	switch key {
	case "", dataprocessing.SortByDate, dataprocessing.SortByAssembly, dataprocessing.SortByQuantity:
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("sort",
			fmt.Sprintf("Unknown sort key: %s", key)))
		return
	}
	descending := r.URL.Query().Get("order") == "desc"

	records := h.service.Records(filter, key, descending)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// ResetRecords handles DELETE /api/reports/records: drop the in-memory set.
func (h *ReportHandler) ResetRecords(w http.ResponseWriter, r *http.Request) {
	h.service.Reset()
	h.logger.InfoContext(r.Context(), "record set reset",
		slog.String("request_id", middleware.GetReqID(r.Context())))
	render.JSON(w, r, map[string]interface{}{"status": "success"})
}

// GetDates handles GET /api/reports/dates.
func (h *ReportHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates := h.service.Dates()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dates,
		"count":  len(dates),
	})
}

// GetSummary handles GET /api/reports/summary.
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := h.filterFromQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Summary(filter),
	})
}

// GetProgress handles GET /api/reports/progress.
func (h *ReportHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := h.filterFromQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	progress := h.service.Progress(filter)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   progress,
		"count":  len(progress),
	})
}

// GetLastRun handles GET /api/reports/runs/last.
func (h *ReportHandler) GetLastRun(w http.ResponseWriter, r *http.Request) {
	run := h.service.LastRun()
	if run == nil {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("batch run"))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"run":    run,
	})
}

// DownloadWorkbook handles GET /api/reports/export/excel: stream the
// analysis workbook without touching disk.
func (h *ReportHandler) DownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := h.filterFromQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	fileName := fmt.Sprintf("%s%s.xlsx", config.ExportFileNamePrefix, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if err := h.service.WriteWorkbook(filter, w); err != nil {
		if errors.Is(err, services.ErrNoRecords) {
			// Headers may already be out; reset them before the problem body.
			w.Header().Del("Content-Disposition")
			w.Header().Set("Content-Type", "application/json")
			h.errorHandler.HandleError(w, r, apierrors.ErrNoRecords)
			return
		}
		h.logger.ErrorContext(r.Context(), "workbook download failed",
			slog.String("error", err.Error()))
		return
	}
}

// filterFromQuery builds a record filter from common query parameters.
func (h *ReportHandler) filterFromQuery(r *http.Request) (dataprocessing.Filter, *apierrors.APIError) {
	q := r.URL.Query()
	filter := dataprocessing.Filter{
		Date:              q.Get("date"),
		AssemblySubstring: q.Get("assembly"),
	}
	if filter.Date != "" && filter.Date != "all" {
		if err := h.validate.Var(filter.Date, "len=8,numeric"); err != nil {
			return dataprocessing.Filter{}, apierrors.ErrValidation("date",
				fmt.Sprintf("Date must be YYYYMMDD or \"all\", got %q", filter.Date))
		}
	}
	if vendor := q.Get("vendor"); vendor != "" {
		if !domain.Vendor(vendor).IsKnown() {
			return dataprocessing.Filter{}, apierrors.ErrUnknownVendor
		}
		filter.Vendor = domain.Vendor(vendor)
	}
	return filter, nil
}
