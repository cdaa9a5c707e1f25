package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/models"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
)

// PrerequisiteReader supplies the prerequisite edge list.
type PrerequisiteReader interface {
	ListAll(ctx context.Context) ([]models.Prerequisite, error)
}

// PrerequisiteService answers eligibility questions over the prerequisite
// graph: which candidate courses are blocked by prerequisites the caller
// has not completed yet.
type PrerequisiteService struct {
	repo     PrerequisiteReader
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPrerequisiteService constructs a prerequisite service.
func NewPrerequisiteService(repo PrerequisiteReader, validate *validator.Validate, logger *zap.Logger) *PrerequisiteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrerequisiteService{repo: repo, validate: validate, logger: logger}
}

// BlockedCourses splits the candidates into blocked and eligible. A
// candidate is blocked when any prerequisite in its transitive chain is
// not completed; a completed course satisfies its whole subtree, so the
// walk never descends past one.
func (s *PrerequisiteService) BlockedCourses(ctx context.Context, req dto.BlockedCoursesRequest) (*dto.BlockedCoursesResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blocked-courses request")
	}

	edges, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}

	requires := make(map[string][]string)
	for _, edge := range edges {
		requires[edge.CourseNumber] = append(requires[edge.CourseNumber], edge.RequiresCourseNumber)
	}
	for course := range requires {
		sort.Strings(requires[course])
	}

	completed := make(map[string]struct{}, len(req.CompletedCourses))
	for _, course := range req.CompletedCourses {
		completed[course] = struct{}{}
	}

	resp := &dto.BlockedCoursesResponse{
		Blocked:  make([]dto.BlockedCourse, 0),
		Eligible: make([]string, 0, len(req.CandidateCourses)),
	}
	for _, candidate := range dedupeStrings(req.CandidateCourses) {
		missing := missingChain(candidate, requires, completed)
		if len(missing) == 0 {
			resp.Eligible = append(resp.Eligible, candidate)
			continue
		}
		resp.Blocked = append(resp.Blocked, dto.BlockedCourse{
			CourseNumber:         candidate,
			MissingPrerequisites: missing,
		})
	}
	return resp, nil
}

// missingChain walks the prerequisite graph breadth-first from the
// candidate and collects every uncompleted course it reaches, direct
// prerequisites before transitive ones. Cycles are tolerated: a visited
// course is never expanded twice.
func missingChain(candidate string, requires map[string][]string, completed map[string]struct{}) []string {
	visited := map[string]struct{}{candidate: {}}
	queue := append([]string(nil), requires[candidate]...)

	var missing []string
	for len(queue) > 0 {
		course := queue[0]
		queue = queue[1:]
		if _, ok := visited[course]; ok {
			continue
		}
		visited[course] = struct{}{}
		if _, ok := completed[course]; ok {
			continue
		}
		missing = append(missing, course)
		queue = append(queue, requires[course]...)
	}
	return missing
}
