package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladkar/semester-planner-api/internal/dto"
)

type stubComposer struct {
	resp *dto.ComposeScheduleResponse
	err  error
}

func (s *stubComposer) Compose(ctx context.Context, userID string, req dto.ComposeScheduleRequest) (*dto.ComposeScheduleResponse, error) {
	return s.resp, s.err
}

func exportFixture() *dto.ComposeScheduleResponse {
	return &dto.ComposeScheduleResponse{
		Status: "success",
		Schedules: []dto.ScheduleView{
			{
				Name: "Option 1",
				Slug: "option_1",
				Activities: []dto.ActivityView{
					{
						Name:       "Algorithms",
						Kind:       "lecture",
						Instructor: "Mike",
						Location:   "Hall A",
						Meetings:   []dto.MeetingView{{Day: 2, Start: "09:00", End: "11:00"}},
					},
					{
						Name:       "Algorithms",
						Kind:       "practice",
						Instructor: "Boris",
						Location:   "Lab 3",
						Meetings:   []dto.MeetingView{{Day: 1, Start: "12:00", End: "14:00"}},
					},
				},
			},
		},
	}
}

func exportRequest(option, format string) dto.ExportScheduleRequest {
	return dto.ExportScheduleRequest{
		ComposeScheduleRequest: dto.ComposeScheduleRequest{CourseNumbers: []string{"CS101"}},
		Option:                 option,
		Format:                 format,
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewExportService(&stubComposer{resp: exportFixture()}, nil, nil)

	artifact, err := svc.Export(context.Background(), "user-1", exportRequest("option_1", "csv"))
	require.NoError(t, err)

	assert.Equal(t, "option_1.csv", artifact.FileName)
	assert.Equal(t, "text/csv", artifact.ContentType)

	body := string(artifact.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Start,End,Course,Kind,Instructor,Location", lines[0])
	// Rows come out ordered by day then start time.
	assert.Contains(t, lines[1], "Monday")
	assert.Contains(t, lines[1], "Boris")
	assert.Contains(t, lines[2], "Tuesday")
	assert.Contains(t, lines[2], "Mike")
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(&stubComposer{resp: exportFixture()}, nil, nil)

	artifact, err := svc.Export(context.Background(), "user-1", exportRequest("Option 1", "pdf"))
	require.NoError(t, err)

	assert.Equal(t, "option_1.pdf", artifact.FileName)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.True(t, strings.HasPrefix(string(artifact.Data), "%PDF"))
}

func TestExportUnknownOption(t *testing.T) {
	svc := NewExportService(&stubComposer{resp: exportFixture()}, nil, nil)

	_, err := svc.Export(context.Background(), "user-1", exportRequest("option_9", "csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option_9")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubComposer{resp: exportFixture()}, nil, nil)

	_, err := svc.Export(context.Background(), "user-1", exportRequest("option_1", "xlsx"))
	require.Error(t, err)
}
