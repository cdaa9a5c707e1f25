package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/models"
	"github.com/eladkar/semester-planner-api/internal/timetable"
	"github.com/eladkar/semester-planner-api/pkg/config"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
)

// SectionCatalogue describes catalogue access required by PlannerService.
type SectionCatalogue interface {
	ListByParentCourseNumbers(ctx context.Context, parents []string) ([]models.Section, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Section, error)
	ListMeetings(ctx context.Context, sectionIDs []int64) ([]models.SectionMeeting, error)
}

// PreferenceReader supplies a user's favorite-instructor rows.
type PreferenceReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.InstructorPreference, error)
}

// EnrollmentReader supplies enrollment-group and degree-offering data.
type EnrollmentReader interface {
	GroupsBySections(ctx context.Context, sectionIDs []int64) ([]models.EnrollmentGroup, error)
	DegreesByParents(ctx context.Context, parents []string) ([]models.CourseDegree, error)
}

// SettingsReader supplies a user's stored planner settings.
type SettingsReader interface {
	GetByUser(ctx context.Context, userID string) (*models.PlannerSettings, error)
}

// PlannerService composes schedules: it assembles solver input from the
// catalogue and the caller's settings, runs the relaxation ladder, and
// caches rendered results in Redis.
type PlannerService struct {
	sections   SectionCatalogue
	prefs      PreferenceReader
	enrollment EnrollmentReader
	settings   SettingsReader
	cache      *CacheService
	metrics    *MetricsService
	cfg        config.PlannerConfig
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewPlannerService constructs a planner service.
func NewPlannerService(sections SectionCatalogue, prefs PreferenceReader, enrollment EnrollmentReader, settings SettingsReader, cache *CacheService, metrics *MetricsService, cfg config.PlannerConfig, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		sections:   sections,
		prefs:      prefs,
		enrollment: enrollment,
		settings:   settings,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
		validate:   validate,
		logger:     logger,
	}
}

// Compose returns every internally consistent schedule over the requested
// courses and personal blocks, relaxing instructor preferences in tiers
// when the strict pass finds nothing.
func (s *PlannerService) Compose(ctx context.Context, userID string, req dto.ComposeScheduleRequest) (*dto.ComposeScheduleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid compose request")
	}

	personal, err := buildPersonalActivities(req.PersonalBlocks)
	if err != nil {
		return nil, err
	}

	filters, err := s.resolveFilters(ctx, userID, req.Overrides)
	if err != nil {
		return nil, err
	}

	cacheKey := composeCacheKey(userID, req, filters)
	if s.cache != nil {
		var cached dto.ComposeScheduleResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			cached.Cached = true
			return &cached, nil
		}
	}

	input, err := s.buildInput(ctx, userID, req.CourseNumbers, personal, filters)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := timetable.Solve(input)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveSolverRun(result.Status.String(), len(result.Schedules), elapsed)
	}

	resp := s.renderResult(result, elapsed)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cfg.ResultCacheTTL); err != nil {
			s.logger.Warn("cache compose result", zap.Error(err))
		}
	}

	s.logger.Info("composed schedules",
		zap.String("user_id", userID),
		zap.Strings("courses", req.CourseNumbers),
		zap.String("status", resp.Status),
		zap.Int("schedules", len(resp.Schedules)),
		zap.Duration("elapsed", elapsed))

	return resp, nil
}

// CheckRegistrable reports whether the given sections can all be attended
// together. Taste filters are ignored; only slot conflicts and enrollment
// eligibility apply.
func (s *PlannerService) CheckRegistrable(ctx context.Context, userID string, req dto.CheckSectionsRequest) (*dto.CheckSectionsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid check request")
	}

	sections, err := s.sections.FindByIDs(ctx, req.SectionIDs)
	if err != nil {
		return nil, fmt.Errorf("find sections: %w", err)
	}
	if len(sections) != len(dedupeInt64(req.SectionIDs)) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "one or more sections not found")
	}

	activities, parents, err := s.buildActivities(ctx, sections)
	if err != nil {
		return nil, err
	}

	degree := ""
	if settings, err := s.settings.GetByUser(ctx, userID); err == nil && settings != nil {
		degree = settings.Degree
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load planner settings: %w", err)
	}

	enrollment, err := s.loadEnrollment(ctx, sectionIDs(sections), parents)
	if err != nil {
		return nil, err
	}

	schedules := timetable.SolveMinimal(timetable.Input{
		Activities: activities,
		Filters:    timetable.Filters{Degree: degree},
		Enrollment: enrollment,
	})

	return &dto.CheckSectionsResponse{
		Registrable:  len(schedules) > 0,
		Combinations: len(schedules),
	}, nil
}

// resolveFilters loads the caller's stored settings, falls back to defaults
// when none exist, and applies per-request overrides on top.
func (s *PlannerService) resolveFilters(ctx context.Context, userID string, overrides *dto.FilterOverrides) (timetable.Filters, error) {
	filters := timetable.NewFilters()
	if len(s.cfg.AdministrativeMarkers) > 0 {
		filters.AdministrativeMarkers = s.cfg.AdministrativeMarkers
	}

	settings, err := s.settings.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return timetable.Filters{}, fmt.Errorf("load planner settings: %w", err)
	}
	if settings != nil {
		filters.RequireFreeCapacity = settings.RequireFreeCapacity
		filters.RequireSameActualSection = settings.RequireSameActualSection
		filters.ExcludeAdministrative = settings.ExcludeAdministrative
		filters.EnrollmentEligibleOnly = settings.EnrollmentEligibleOnly
		filters.Degree = settings.Degree
		if len(settings.AllowedDays) > 0 {
			var days []int
			if err := json.Unmarshal(settings.AllowedDays, &days); err != nil {
				return timetable.Filters{}, fmt.Errorf("decode allowed days: %w", err)
			}
			filters.AllowedDays = daySet(days)
		}
	}

	if overrides != nil {
		if len(overrides.AllowedDays) > 0 {
			filters.AllowedDays = daySet(overrides.AllowedDays)
		}
		if overrides.RequireFreeCapacity != nil {
			filters.RequireFreeCapacity = *overrides.RequireFreeCapacity
		}
		if overrides.RequireSameActualSection != nil {
			filters.RequireSameActualSection = *overrides.RequireSameActualSection
		}
		if overrides.ExcludeAdministrative != nil {
			filters.ExcludeAdministrative = *overrides.ExcludeAdministrative
		}
		if overrides.EnrollmentEligibleOnly != nil {
			filters.EnrollmentEligibleOnly = *overrides.EnrollmentEligibleOnly
		}
		if overrides.Degree != nil {
			filters.Degree = *overrides.Degree
		}
	}

	return filters, nil
}

// buildInput assembles the full solver input for a compose run.
func (s *PlannerService) buildInput(ctx context.Context, userID string, courseNumbers []string, personal []*timetable.Activity, filters timetable.Filters) (timetable.Input, error) {
	parents := dedupeStrings(courseNumbers)

	sections, err := s.sections.ListByParentCourseNumbers(ctx, parents)
	if err != nil {
		return timetable.Input{}, fmt.Errorf("list sections: %w", err)
	}

	activities, _, err := s.buildActivities(ctx, sections)
	if err != nil {
		return timetable.Input{}, err
	}
	activities = append(activities, personal...)

	prefs, err := s.loadPreferences(ctx, userID, sections)
	if err != nil {
		return timetable.Input{}, err
	}

	var enrollment *timetable.Enrollment
	if filters.EnrollmentEligibleOnly {
		enrollment, err = s.loadEnrollment(ctx, sectionIDs(sections), parents)
		if err != nil {
			return timetable.Input{}, err
		}
	}

	return timetable.Input{
		Activities:  activities,
		Preferences: prefs,
		Filters:     filters,
		Enrollment:  enrollment,
	}, nil
}

// buildActivities converts catalogue rows plus their meetings into solver
// activities. Malformed meeting rows are logged and skipped rather than
// failing the whole request.
func (s *PlannerService) buildActivities(ctx context.Context, sections []models.Section) ([]*timetable.Activity, []string, error) {
	ids := sectionIDs(sections)

	meetings, err := s.sections.ListMeetings(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("list meetings: %w", err)
	}

	meetingsBySection := make(map[int64][]models.SectionMeeting, len(sections))
	for _, meeting := range meetings {
		meetingsBySection[meeting.SectionID] = append(meetingsBySection[meeting.SectionID], meeting)
	}

	activities := make([]*timetable.Activity, 0, len(sections))
	parentSet := make(map[string]struct{})
	for _, section := range sections {
		activity := timetable.NewActivity(section.ID, section.CourseName, timetable.KindFromString(section.Kind), section.AttendanceRequired)
		activity.Instructor = section.Instructor
		activity.CourseNumber = section.CourseNumber
		activity.ParentCourseNumber = section.ParentCourseNumber
		activity.Location = section.Location
		activity.ActualSectionID = section.ActualSectionID
		activity.Notes = section.Notes
		activity.Capacity = timetable.Capacity{Taken: section.CapacityTaken, Max: section.CapacityMax}

		for _, meeting := range meetingsBySection[section.ID] {
			slot, err := timetable.NewTimeSlot(meeting.DayOfWeek, meeting.StartMinutes, meeting.EndMinutes)
			if err != nil {
				s.logger.Warn("skipping malformed meeting",
					zap.Int64("section_id", section.ID),
					zap.Int64("meeting_id", meeting.ID),
					zap.Error(err))
				continue
			}
			if err := activity.AddSlot(slot); err != nil {
				s.logger.Warn("skipping overlapping meeting",
					zap.Int64("section_id", section.ID),
					zap.Int64("meeting_id", meeting.ID),
					zap.Error(err))
			}
		}

		activities = append(activities, activity)
		if section.ParentCourseNumber != "" {
			parentSet[section.ParentCourseNumber] = struct{}{}
		}
	}

	parents := make([]string, 0, len(parentSet))
	for parent := range parentSet {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	return activities, parents, nil
}

// loadPreferences maps stored favorite-instructor rows onto the solver's
// per-course preference sets. Rows for courses outside the request are
// ignored.
func (s *PlannerService) loadPreferences(ctx context.Context, userID string, sections []models.Section) (timetable.Preferences, error) {
	rows, err := s.prefs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	nameByParent := make(map[string]string, len(sections))
	for _, section := range sections {
		if section.ParentCourseNumber != "" {
			nameByParent[section.ParentCourseNumber] = section.CourseName
		}
	}

	prefs := make(timetable.Preferences)
	for _, row := range rows {
		course, ok := nameByParent[row.CourseNumber]
		if !ok {
			continue
		}
		pref, ok := prefs[course]
		if !ok {
			pref = timetable.CoursePreference{
				Lectures:  make(map[string]struct{}),
				Exercises: make(map[string]struct{}),
			}
		}
		switch row.Role {
		case models.PreferenceRoleLecture:
			pref.Lectures[row.Instructor] = struct{}{}
		case models.PreferenceRoleExercise:
			pref.Exercises[row.Instructor] = struct{}{}
		}
		prefs[course] = pref
	}
	if len(prefs) == 0 {
		return nil, nil
	}
	return prefs, nil
}

// loadEnrollment fetches group and degree data for the enrollment
// predicate. Activity ids are section ids, so group rows map directly.
func (s *PlannerService) loadEnrollment(ctx context.Context, ids []int64, parents []string) (*timetable.Enrollment, error) {
	groupRows, err := s.enrollment.GroupsBySections(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list enrollment groups: %w", err)
	}
	degreeRows, err := s.enrollment.DegreesByParents(ctx, parents)
	if err != nil {
		return nil, fmt.Errorf("list course degrees: %w", err)
	}
	if len(groupRows) == 0 && len(degreeRows) == 0 {
		return nil, nil
	}

	enrollment := &timetable.Enrollment{
		Groups:        make(map[int64][]int64),
		CourseDegrees: make(map[string][]string),
	}
	for _, row := range groupRows {
		enrollment.Groups[row.SectionID] = append(enrollment.Groups[row.SectionID], row.GroupID)
	}
	for _, row := range degreeRows {
		enrollment.CourseDegrees[row.ParentCourseNumber] = append(enrollment.CourseDegrees[row.ParentCourseNumber], row.Degree)
	}
	return enrollment, nil
}

// renderResult maps a solver result onto the response DTO, capping the
// number of returned options when configured.
func (s *PlannerService) renderResult(result timetable.Result, elapsed time.Duration) *dto.ComposeScheduleResponse {
	schedules := result.Schedules
	if s.cfg.MaxSchedules > 0 && len(schedules) > s.cfg.MaxSchedules {
		schedules = schedules[:s.cfg.MaxSchedules]
	}

	views := make([]dto.ScheduleView, 0, len(schedules))
	for _, schedule := range schedules {
		views = append(views, scheduleView(schedule))
	}

	resp := &dto.ComposeScheduleResponse{
		Status:    result.Status.String(),
		Schedules: views,
		ElapsedMs: elapsed.Milliseconds(),
	}
	if result.LastCollision != nil {
		resp.LastCollision = &dto.CollisionView{
			CourseA: result.LastCollision.CourseA,
			CourseB: result.LastCollision.CourseB,
		}
	}
	return resp
}

func scheduleView(schedule *timetable.Schedule) dto.ScheduleView {
	activities := make([]dto.ActivityView, 0, len(schedule.Activities))
	for _, activity := range schedule.Activities {
		slots := activity.Slots()
		meetings := make([]dto.MeetingView, 0, len(slots))
		for _, slot := range slots {
			meetings = append(meetings, dto.MeetingView{
				Day:   slot.Day,
				Start: minutesToClock(slot.Start),
				End:   minutesToClock(slot.End),
			})
		}
		activities = append(activities, dto.ActivityView{
			Name:            activity.Name,
			Kind:            activity.Kind.String(),
			Instructor:      activity.Instructor,
			CourseNumber:    activity.CourseNumber,
			Location:        activity.Location,
			ActualSectionID: activity.ActualSectionID,
			Meetings:        meetings,
		})
	}
	return dto.ScheduleView{
		Name:       schedule.Name,
		Slug:       schedule.FileName,
		Activities: activities,
	}
}

// buildPersonalActivities converts personal block requests into solver
// activities. Personal blocks always require attendance and carry negative
// ids so they can never collide with catalogue section ids.
func buildPersonalActivities(blocks []dto.PersonalBlockRequest) ([]*timetable.Activity, error) {
	activities := make([]*timetable.Activity, 0, len(blocks))
	for i, block := range blocks {
		start, err := parseClock(block.Start)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("personal block %q: invalid start time", block.Name))
		}
		end, err := parseClock(block.End)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("personal block %q: invalid end time", block.Name))
		}
		slot, err := timetable.NewTimeSlot(block.Day, start, end)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("personal block %q: invalid time range", block.Name))
		}

		activity := timetable.NewActivity(-int64(i+1), block.Name, timetable.KindPersonal, true)
		if err := activity.AddSlot(slot); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("personal block %q: conflicting slot", block.Name))
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

// composeCacheKey derives a stable digest over everything that influences
// a compose result for one user.
func composeCacheKey(userID string, req dto.ComposeScheduleRequest, filters timetable.Filters) string {
	days := make([]int, 0, len(filters.AllowedDays))
	for day := range filters.AllowedDays {
		days = append(days, day)
	}
	sort.Ints(days)

	courses := dedupeStrings(req.CourseNumbers)
	sort.Strings(courses)

	payload := struct {
		Courses  []string
		Blocks   []dto.PersonalBlockRequest
		Days     []int
		FreeCap  bool
		SameSec  bool
		NoAdmin  bool
		Enroll   bool
		Degree   string
		Markers  []string
	}{courses, req.PersonalBlocks, days, filters.RequireFreeCapacity, filters.RequireSameActualSection, filters.ExcludeAdministrative, filters.EnrollmentEligibleOnly, filters.Degree, filters.AdministrativeMarkers}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("planner:compose:%s:%s", userID, hex.EncodeToString(sum[:]))
}

// InvalidateUser drops every cached compose result for the user. Called
// after settings or preference changes.
func (s *PlannerService) InvalidateUser(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, fmt.Sprintf("planner:compose:%s:*", userID))
}

func parseClock(raw string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(raw, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q out of range", raw)
	}
	return timetable.ClockMinutes(hour, minute), nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func daySet(days []int) map[int]struct{} {
	set := make(map[int]struct{}, len(days))
	for _, day := range days {
		set[day] = struct{}{}
	}
	return set
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func dedupeInt64(values []int64) []int64 {
	seen := make(map[int64]struct{}, len(values))
	out := make([]int64, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func sectionIDs(sections []models.Section) []int64 {
	ids := make([]int64, 0, len(sections))
	for _, section := range sections {
		ids = append(ids, section.ID)
	}
	return ids
}
