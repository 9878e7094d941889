package service

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
)

// rotationEntry is one faculty in the round-robin queue with its outstanding
// slot need.
type rotationEntry struct {
	faculty *models.Faculty
	need    int
}

// AutoGenerate fills outstanding slot needs from the free portion of the
// 40-slot universe, shuffled, one slot per faculty per turn so need spreads
// evenly instead of exhausting one faculty at a time. Unmet needs are
// reported, never raised as errors.
func (s *SchedulerService) AutoGenerate(req dto.GenerateRequest) *dto.GenerationReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	include := s.includeSelectionDefault
	if req.IncludeSelection != nil {
		include = *req.IncludeSelection
	}
	rng := s.rng
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	// Target list: committed faculty, plus the in-progress one when included.
	targets := append([]*models.Faculty(nil), s.faculty...)
	var sessionFaculty *models.Faculty
	if include && s.session != nil {
		sessionFaculty = s.session.faculty
		targets = append(targets, sessionFaculty)
	}

	queue := make([]*rotationEntry, 0, len(targets))
	for _, f := range targets {
		if need := f.Need(); need > 0 {
			queue = append(queue, &rotationEntry{faculty: f, need: need})
		}
	}

	report := &dto.GenerationReport{UnmetNeeds: map[string]int{}}
	if len(queue) == 0 {
		report.NothingToDo = true
		report.FreeSlotsLeft = models.SlotUniverseSize - s.timetable.Len()
		report.Messages = append(report.Messages, "no faculty requires additional slots")
		return report
	}

	free := s.timetable.FreeSlots()
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	// Circular queue: pop a faculty, give it one slot, re-push while need
	// remains. The rotation pointer therefore advances once per assignment.
	for len(free) > 0 && len(queue) > 0 {
		slot := free[0]
		free = free[1:]

		entry := queue[0]
		queue = queue[1:]

		_ = s.timetable.Assign(slot, entry.faculty)
		entry.faculty.AddSlot(slot)
		entry.need--
		report.Assigned++
		if entry.need > 0 {
			queue = append(queue, entry)
		}
	}

	for _, entry := range queue {
		report.UnmetNeeds[entry.faculty.ID] = entry.need
		report.Messages = append(report.Messages,
			fmt.Sprintf("could not assign %d slot(s) for %s: insufficient free slots", entry.need, entry.faculty.Name))
	}
	report.FreeSlotsLeft = len(free)

	// Absorbing the session implicitly commits its faculty: it joins the
	// committed list even when its need was only partially met, and the
	// session ends.
	if sessionFaculty != nil {
		s.faculty = append(s.faculty, sessionFaculty)
		s.session = nil
		report.PromotedFacultyID = sessionFaculty.ID
		report.Messages = append(report.Messages,
			fmt.Sprintf("auto-added in-progress faculty %s to the committed list", sessionFaculty.Name))
	}

	s.metrics.ObserveGeneration(report.Assigned, len(report.UnmetNeeds))
	s.logger.Info("auto_generation_completed",
		zap.Int("assigned", report.Assigned),
		zap.Int("unmet_faculty", len(report.UnmetNeeds)),
		zap.Int("free_slots_left", report.FreeSlotsLeft),
	)
	return report
}
