package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"pcreport/internal/config"
	"pcreport/internal/files"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	paths     config.PathsConfig
	reports   *ReportService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies.
func NewHealthService(version, buildTime string, paths config.PathsConfig, reports *ReportService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		reports:   reports,
		startTime: time.Now(),
		logger:    logger,
	}
}

// CheckHealth returns the overall health status of the service, including
// runtime stats and the state of the in-memory record set.
func (h *HealthService) CheckHealth(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(h.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
		},
	}

	data := map[string]interface{}{
		"input_dir": h.paths.InputDir,
	}
	if found, err := files.NewDiscovery("").FindReportFiles(h.paths.InputDir); err != nil {
		data["input_dir_error"] = err.Error()
		status.Status = "degraded"
	} else {
		var size int64
		for _, f := range found {
			size += f.Size
		}
		data["input_files"] = len(found)
		data["input_size_bytes"] = size
		if latest, ok := files.GetLatestFile(found); ok {
			data["latest_input_file"] = latest.Name
			data["latest_input_mod_time"] = latest.ModTime.Format(time.RFC3339)
		}
	}

	if h.reports != nil {
		data["records_loaded"] = len(h.reports.AllRecords())
		if run := h.reports.LastRun(); run != nil {
			data["last_run"] = run.StartedAt.Format(time.RFC3339)
			data["last_run_failed_files"] = run.Failed
		}
	}
	status.Data = data

	h.logger.DebugContext(ctx, "health check complete",
		slog.String("status", status.Status))
	return status
}

// Uptime returns a human readable uptime string.
func (h *HealthService) Uptime() string {
	d := time.Since(h.startTime).Round(time.Second)
	return fmt.Sprint(d)
}
