package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eladkar/semester-planner-api/internal/dto"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
	"github.com/eladkar/semester-planner-api/pkg/export"
)

// ScheduleComposer is the slice of PlannerService the exporter needs.
type ScheduleComposer interface {
	Compose(ctx context.Context, userID string, req dto.ComposeScheduleRequest) (*dto.ComposeScheduleResponse, error)
}

// ExportArtifact is a rendered schedule ready for download.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService re-composes a schedule request and renders one chosen
// option as CSV or PDF.
type ExportService struct {
	composer ScheduleComposer
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	validate *validator.Validate
	logger   *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(composer ScheduleComposer, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		composer: composer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		validate: validate,
		logger:   logger,
	}
}

var scheduleExportHeaders = []string{"Day", "Start", "End", "Course", "Kind", "Instructor", "Location"}

var dayLabels = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// Export composes the schedules for the request and renders the option
// named by slug or display name. The compose pass goes through the same
// cached path as the interactive endpoint.
func (s *ExportService) Export(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*ExportArtifact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	resp, err := s.composer.Compose(ctx, userID, req.ComposeScheduleRequest)
	if err != nil {
		return nil, err
	}

	schedule := findSchedule(resp.Schedules, req.Option)
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule option %q not found", req.Option))
	}

	dataset := scheduleDataset(*schedule)

	switch req.Format {
	case "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		return &ExportArtifact{
			FileName:    schedule.Slug + ".csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, schedule.Name)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return &ExportArtifact{
			FileName:    schedule.Slug + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
}

func findSchedule(schedules []dto.ScheduleView, option string) *dto.ScheduleView {
	for i := range schedules {
		if schedules[i].Slug == option || schedules[i].Name == option {
			return &schedules[i]
		}
	}
	return nil
}

// scheduleDataset flattens a schedule into one row per meeting, ordered
// by day then start time.
func scheduleDataset(schedule dto.ScheduleView) export.Dataset {
	type meetingRow struct {
		day   int
		start string
		row   map[string]string
	}

	rows := make([]meetingRow, 0)
	for _, activity := range schedule.Activities {
		for _, meeting := range activity.Meetings {
			rows = append(rows, meetingRow{
				day:   meeting.Day,
				start: meeting.Start,
				row: map[string]string{
					"Day":        dayLabels[meeting.Day],
					"Start":      meeting.Start,
					"End":        meeting.End,
					"Course":     activity.Name,
					"Kind":       activity.Kind,
					"Instructor": activity.Instructor,
					"Location":   activity.Location,
				},
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].day != rows[j].day {
			return rows[i].day < rows[j].day
		}
		return rows[i].start < rows[j].start
	})

	dataset := export.Dataset{Headers: scheduleExportHeaders}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, row.row)
	}
	return dataset
}
