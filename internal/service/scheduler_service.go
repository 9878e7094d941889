package service

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
)

// SchedulerService owns the scheduler state: the committed faculty list, the
// authoritative timetable, and the at-most-one selection session. Every
// operation runs under the mutex, so mutations never interleave even though
// the HTTP shell is concurrent.
type SchedulerService struct {
	mu        sync.Mutex
	faculty   []*models.Faculty
	timetable *models.Timetable
	session   *selectionSession

	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	rng       *rand.Rand

	includeSelectionDefault bool
}

// SchedulerConfig governs engine behaviour.
type SchedulerConfig struct {
	// Seed fixes the auto-generation shuffle. Zero selects a time-based seed.
	Seed int64
	// IncludeSelection is the default for absorbing an in-progress selection
	// into auto-generation runs.
	IncludeSelection bool
}

// NewSchedulerService wires the engine dependencies.
func NewSchedulerService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SchedulerConfig) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SchedulerService{
		timetable:               models.NewTimetable(),
		validator:               validate,
		logger:                  logger,
		metrics:                 metrics,
		rng:                     rand.New(rand.NewSource(seed)),
		includeSelectionDefault: cfg.IncludeSelection,
	}
}

// selectionSession is the ephemeral in-progress faculty-to-slots binding.
// The target faculty is not yet part of the faculty list or the timetable.
type selectionSession struct {
	faculty *models.Faculty
	chosen  map[models.Slot]struct{}
}

func (s *selectionSession) view() *dto.SessionView {
	slots := make([]models.Slot, 0, len(s.chosen))
	for slot := range s.chosen {
		slots = append(slots, slot)
	}
	strs := make([]string, 0, len(slots))
	for _, slot := range sortedSlots(slots) {
		strs = append(strs, slot.String())
	}
	return &dto.SessionView{
		FacultyID:     s.faculty.ID,
		Name:          s.faculty.Name,
		Subject:       s.faculty.Subject,
		Room:          s.faculty.Room,
		RequiredHours: s.faculty.RequiredHours,
		ChosenCount:   len(s.chosen),
		ChosenSlots:   strs,
		Progress:      fmt.Sprintf("%d/%d", len(s.chosen), s.faculty.RequiredHours),
	}
}

// StartSelection validates the form input and opens a selection session.
func (s *SchedulerService) StartSelection(req dto.StartSelectionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields are required: name, subject, hours, room")
	}
	hours, err := strconv.Atoi(strings.TrimSpace(req.Hours))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hours must be an integer")
	}
	if hours <= 0 || hours > models.SlotUniverseSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("hours must be between 1 and %d", models.SlotUniverseSize))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("a selection for %s is already in progress; commit or reset it first", s.session.faculty.Name))
	}

	faculty := models.NewFaculty(uuid.NewString(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Subject), hours, strings.TrimSpace(req.Room))
	s.session = &selectionSession{
		faculty: faculty,
		chosen:  make(map[models.Slot]struct{}),
	}

	s.logger.Info("selection_started",
		zap.String("faculty", faculty.Name),
		zap.Int("required_hours", hours),
		zap.String("room", faculty.Room),
	)
	return s.session.view(), nil
}

// ToggleSlot selects or deselects one slot for the active session.
func (s *SchedulerService) ToggleSlot(raw string) (*dto.SessionView, error) {
	slot, err := models.ParseSlot(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, appErrors.Clone(appErrors.ErrNoActiveSelection, "")
	}

	if _, chosen := s.session.chosen[slot]; chosen {
		delete(s.session.chosen, slot)
		s.metrics.ObserveToggle()
		return s.session.view(), nil
	}

	if occupant := s.timetable.Occupant(slot); occupant != nil {
		return nil, appErrors.Clone(appErrors.ErrSlotOccupied,
			fmt.Sprintf("slot %s is already occupied by %s (room %s)", slot, occupant.Name, occupant.Room))
	}
	if len(s.session.chosen) >= s.session.faculty.RequiredHours {
		return nil, appErrors.Clone(appErrors.ErrQuotaReached,
			fmt.Sprintf("the required number of slots (%d) is already selected", s.session.faculty.RequiredHours))
	}

	s.session.chosen[slot] = struct{}{}
	s.metrics.ObserveToggle()
	return s.session.view(), nil
}

// CommitSelection atomically writes a completed selection into the timetable
// and faculty list. It re-validates occupancy at commit time: the session may
// be stale relative to an auto-generation run that happened since the slots
// were toggled.
func (s *SchedulerService) CommitSelection() (*dto.FacultyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, appErrors.Clone(appErrors.ErrNoActiveSelection, "")
	}

	faculty := s.session.faculty
	if len(s.session.chosen) != faculty.RequiredHours {
		return nil, appErrors.Clone(appErrors.ErrSelectionIncomplete,
			fmt.Sprintf("selected %d of %d required slots", len(s.session.chosen), faculty.RequiredHours))
	}

	var conflicts []models.CommitConflict
	for slot := range s.session.chosen {
		occupant := s.timetable.Occupant(slot)
		if occupant == nil {
			continue
		}
		conflicts = append(conflicts, models.CommitConflict{
			Slot:         slot.String(),
			OccupantID:   occupant.ID,
			OccupantName: occupant.Name,
			OccupantRoom: occupant.Room,
			SameRoom:     occupant.Room == faculty.Room,
		})
	}
	if len(conflicts) > 0 {
		return nil, appErrors.Wrap(&models.CommitConflictError{Conflicts: conflicts},
			appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
			fmt.Sprintf("%d slot(s) conflict with the timetable", len(conflicts))).
			WithDetails(conflicts)
	}

	for slot := range s.session.chosen {
		_ = s.timetable.Assign(slot, faculty)
		faculty.AddSlot(slot)
	}
	s.faculty = append(s.faculty, faculty)
	s.session = nil

	s.metrics.ObserveCommit(faculty.RequiredHours)
	s.logger.Info("selection_committed",
		zap.String("faculty", faculty.Name),
		zap.Int("slots", faculty.RequiredHours),
	)
	return facultyView(faculty), nil
}

// Session returns the active session view, or nil when idle.
func (s *SchedulerService) Session() *dto.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	return s.session.view()
}

// Faculties lists the committed faculty.
func (s *SchedulerService) Faculties() []dto.FacultyView {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]dto.FacultyView, 0, len(s.faculty))
	for _, f := range s.faculty {
		views = append(views, *facultyView(f))
	}
	return views
}

// SlotDetail inspects a single slot.
func (s *SchedulerService) SlotDetail(raw string) (*dto.SlotDetail, error) {
	slot, err := models.ParseSlot(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detail := &dto.SlotDetail{Slot: slot.String()}
	if occupant := s.timetable.Occupant(slot); occupant != nil {
		detail.Occupied = true
		detail.Occupant = facultyView(occupant)
	}
	return detail, nil
}

// Grid renders the full weekly grid: occupied cells, the active selection,
// and conflicted slots, ready for a client to display.
func (s *SchedulerService) Grid() *dto.GridView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make(map[string]dto.GridCell, models.SlotUniverseSize)
	for _, slot := range models.AllSlots() {
		cells[slot.String()] = dto.GridCell{State: dto.CellEmpty}
	}

	s.timetable.Entries(func(slot models.Slot, f *models.Faculty) {
		cells[slot.String()] = dto.GridCell{
			State:       dto.CellOccupied,
			FacultyID:   f.ID,
			FacultyName: f.Name,
			Subject:     f.Subject,
			Room:        f.Room,
		}
	})

	var selection *dto.SessionView
	if s.session != nil {
		selection = s.session.view()
		for slot := range s.session.chosen {
			cells[slot.String()] = dto.GridCell{
				State:       dto.CellSelected,
				FacultyID:   s.session.faculty.ID,
				FacultyName: s.session.faculty.Name,
				Subject:     s.session.faculty.Subject,
				Room:        s.session.faculty.Room,
			}
		}
	}

	for _, slot := range s.conflictedSlots() {
		cell := cells[slot.String()]
		cell.State = dto.CellConflict
		cells[slot.String()] = cell
	}

	return &dto.GridView{
		Days:        append([]string(nil), models.Days...),
		HoursPerDay: models.HoursPerDay,
		Cells:       cells,
		Selection:   selection,
	}
}

// Reset clears the faculty list, the timetable, and any active session.
func (s *SchedulerService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faculty = nil
	s.timetable = models.NewTimetable()
	s.session = nil
	s.logger.Info("scheduler_reset")
}

func facultyView(f *models.Faculty) *dto.FacultyView {
	slots := make([]string, 0, len(f.Slots))
	for _, slot := range f.SortedSlots() {
		slots = append(slots, slot.String())
	}
	return &dto.FacultyView{
		ID:            f.ID,
		Name:          f.Name,
		Subject:       f.Subject,
		RequiredHours: f.RequiredHours,
		Room:          f.Room,
		AssignedSlots: slots,
	}
}

func sortedSlots(slots []models.Slot) []models.Slot {
	out := append([]models.Slot(nil), slots...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
