package solver

import (
	"fmt"

	"suspectgrid/internal/cellset"
	"suspectgrid/internal/core"
	"suspectgrid/pkg/constants"
)

// tryRoomConstraints runs every dynamic constraint kind except
// onlyPersonOnCellType and relativeRow, which get their own pipeline
// stages.
func (s *Solver) tryRoomConstraints() *core.SolveStep {
	for _, sid := range s.order {
		if _, done := s.placed[sid]; done {
			continue
		}
		for _, c := range s.suspectsByID[sid].Constraints {
			var step *core.SolveStep
			switch c.Kind {
			case core.KindAlone:
				step = s.evalAlone(sid)
			case core.KindAloneWith:
				step = s.evalAloneWith(sid, c.SuspectID)
			case core.KindAloneWithGender:
				step = s.evalAloneWithGender(sid, c.Gender)
			case core.KindWithPerson:
				step = s.evalWithPerson(sid, c.SuspectID, c.Room)
			case core.KindInRoomWithPersonOnCellType:
				step = s.evalInRoomWithPersonOnCellType(sid, c.Gender, c.CellType)
			case core.KindInRoomWithPersonBesideType:
				step = s.evalInRoomWithPersonBesideCellType(sid, c.CellType)
			case core.KindVictim:
				step = s.evalVictim(sid)
			case core.KindAheadOf:
				step = s.evalAheadOf(sid, c.SuspectID)
			default:
				continue
			}
			if step != nil {
				return step
			}
		}
	}
	return nil
}

// candidatesOrPlaced returns a suspect's current candidate set, or the
// singleton of its placed cell.
func (s *Solver) candidatesOrPlaced(sid string) cellset.Set {
	if cell, done := s.placed[sid]; done {
		return cellset.New(cell)
	}
	return s.candidates[sid]
}

// forcedIntoRoom reports whether sid's every remaining candidate (or its
// placement) lies in room, i.e. it is provably going to end up there.
func (s *Solver) forcedIntoRoom(sid string, room core.RoomID) bool {
	set := s.candidatesOrPlaced(sid)
	if len(set) == 0 {
		return false
	}
	for c := range set {
		if s.index.CellInfo[c].Room != room {
			return false
		}
	}
	return true
}

func (s *Solver) roomsOf(set cellset.Set) map[core.RoomID]bool {
	rooms := make(map[core.RoomID]bool)
	for c := range set {
		rooms[s.index.CellInfo[c].Room] = true
	}
	return rooms
}

func (s *Solver) inRoom(set cellset.Set, room core.RoomID) cellset.Set {
	return cellset.Intersect(set, s.index.RoomCells[room])
}

// evalAlone implements the "alone" dynamic evaluator: a candidate in room R
// is rejected whenever any other suspect is already provably in R, whether
// placed there or forced there by its own candidates.
func (s *Solver) evalAlone(sid string) *core.SolveStep {
	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		if s.anyOtherForcedIntoRoom(room, sid) {
			for c := range s.inRoom(s.candidates[sid], room) {
				eliminated[c] = struct{}{}
			}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s must be alone, but another suspect is forced into the same room", sid))
}

func (s *Solver) anyOtherForcedIntoRoom(room core.RoomID, exclude ...string) bool {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	for _, sid := range s.order {
		if excluded[sid] {
			continue
		}
		if s.forcedIntoRoom(sid, room) {
			return true
		}
	}
	return false
}

// evalAloneWith implements "aloneWith(other)": both suspects are restricted
// to rooms where the partner still has a foothold and no third suspect is
// forced in.
func (s *Solver) evalAloneWith(sid, other string) *core.SolveStep {
	if step := s.aloneWithSide(sid, other); step != nil {
		return step
	}
	return s.aloneWithSide(other, sid)
}

func (s *Solver) aloneWithSide(sid, partner string) *core.SolveStep {
	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		partnerSet := s.inRoom(s.candidatesOrPlaced(partner), room)
		thirdForced := s.anyOtherForcedIntoRoom(room, sid, partner)
		if len(partnerSet) == 0 || thirdForced {
			for c := range s.inRoom(s.candidates[sid], room) {
				eliminated[c] = struct{}{}
			}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s can only be alone with %s", sid, partner))
}

// evalAloneWithGender implements "aloneWithGender(g)": the partner pool is
// every suspect of gender g that does not itself carry an alone constraint.
// A candidate peer is further excluded from a given room's partner pool
// when it carries an inRoom/inRooms constraint that cannot include that
// room, since such a peer could never actually be the one sid shares the
// room with.
func (s *Solver) evalAloneWithGender(sid string, gender core.Gender) *core.SolveStep {
	partner := make(map[string]bool)
	for _, other := range s.order {
		if other == sid {
			continue
		}
		od := s.suspectsByID[other]
		if od.Gender != gender {
			continue
		}
		if hasConstraintKind(od, core.KindAlone) {
			continue
		}
		partner[other] = true
	}

	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		nonPartnerForced := false
		partnerForcedCount := 0
		for _, other := range s.order {
			if other == sid {
				continue
			}
			if !s.forcedIntoRoom(other, room) {
				continue
			}
			if partner[other] && !s.canBeInRoom(other, room) {
				continue
			}
			if partner[other] {
				partnerForcedCount++
			} else {
				nonPartnerForced = true
			}
		}
		if nonPartnerForced || partnerForcedCount >= 2 {
			for c := range s.inRoom(s.candidates[sid], room) {
				eliminated[c] = struct{}{}
			}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s can only share a room with exactly one %s suspect", sid, gender))
}

// canBeInRoom reports whether other's own inRoom/inRooms static constraint
// (if any) permits room at all.
func (s *Solver) canBeInRoom(other string, room core.RoomID) bool {
	for _, c := range s.suspectsByID[other].Constraints {
		switch c.Kind {
		case core.KindInRoom:
			if c.Room != room {
				return false
			}
		case core.KindInRooms:
			found := false
			for _, r := range c.Rooms {
				if r == room {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func hasConstraintKind(s core.Suspect, kind core.ConstraintKind) bool {
	for _, c := range s.Constraints {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// evalWithPerson implements "withPerson(other, room)": both suspects'
// candidates are intersected with the named room.
func (s *Solver) evalWithPerson(sid, other string, room core.RoomID) *core.SolveStep {
	eliminated := cellset.Subtract(s.candidates[sid], s.index.RoomCells[room])
	if step := s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s must be with %s in %s", sid, other, room)); step != nil {
		return step
	}
	if _, done := s.placed[other]; done {
		return nil
	}
	eliminatedOther := cellset.Subtract(s.candidates[other], s.index.RoomCells[room])
	return s.applyDynamic(other, constants.TechniqueRoomConstraint, eliminatedOther,
		fmt.Sprintf("%s must be with %s in %s", other, sid, room))
}

// evalInRoomWithPersonOnCellType implements
// "inRoomWithPersonOnCellType(g, T)": a candidate's room must contain a
// reachable (placed or still candidate) T-cell held by some suspect of
// gender g.
func (s *Solver) evalInRoomWithPersonOnCellType(sid string, gender core.Gender, cellType core.CellType) *core.SolveStep {
	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		if s.someoneReachesTypeInRoom(sid, gender, cellType, room) {
			continue
		}
		for c := range s.inRoom(s.candidates[sid], room) {
			eliminated[c] = struct{}{}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s needs a %s suspect on a %s cell in the same room", sid, gender, cellType))
}

func (s *Solver) someoneReachesTypeInRoom(exclude string, gender core.Gender, cellType core.CellType, room core.RoomID) bool {
	target := cellset.Intersect(s.index.TypeCells[cellType], s.index.RoomCells[room])
	if len(target) == 0 {
		return false
	}
	for _, other := range s.order {
		if other == exclude {
			continue
		}
		if s.suspectsByID[other].Gender != gender {
			continue
		}
		if len(cellset.Intersect(s.candidatesOrPlaced(other), target)) > 0 {
			return true
		}
	}
	return false
}

// evalInRoomWithPersonBesideCellType implements
// "inRoomWithPersonBesideCellType(T)": a candidate's room must contain a
// cell beside a T-cell (within that room) reachable by some other suspect.
func (s *Solver) evalInRoomWithPersonBesideCellType(sid string, cellType core.CellType) *core.SolveStep {
	beside := s.index.CellsBesideType(cellType)
	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		target := cellset.Intersect(beside, s.index.RoomCells[room])
		reachable := false
		if len(target) > 0 {
			for _, other := range s.order {
				if other == sid {
					continue
				}
				if len(cellset.Intersect(s.candidatesOrPlaced(other), target)) > 0 {
					reachable = true
					break
				}
			}
		}
		if reachable {
			continue
		}
		for c := range s.inRoom(s.candidates[sid], room) {
			eliminated[c] = struct{}{}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s needs someone beside a %s in the same room", sid, cellType))
}

// evalVictim implements the "victim" evaluator: the suspect must end up
// alone with exactly one other suspect (the murderer).
func (s *Solver) evalVictim(sid string) *core.SolveStep {
	eliminated := make(cellset.Set)
	for room := range s.roomsOf(s.candidates[sid]) {
		canBeIn, forcedIn := 0, 0
		for _, other := range s.order {
			if other == sid {
				continue
			}
			if len(s.inRoom(s.candidatesOrPlaced(other), room)) > 0 {
				canBeIn++
			}
			if s.forcedIntoRoom(other, room) {
				forcedIn++
			}
		}
		if canBeIn == 0 || forcedIn >= 2 {
			for c := range s.inRoom(s.candidates[sid], room) {
				eliminated[c] = struct{}{}
			}
		}
	}
	return s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
		fmt.Sprintf("%s must end up alone with exactly one other suspect", sid))
}

// evalAheadOf implements "aheadOf(other)" using trackPositions: my
// candidates at or below the peer's minimum feasible position are
// eliminated, and symmetrically the peer's candidates at or above my
// maximum feasible position are eliminated (strict greater-than, pruned
// from both feasible ends).
func (s *Solver) evalAheadOf(sid, other string) *core.SolveStep {
	peerMin, havePeerMin := s.minTrackPosition(other)
	if havePeerMin {
		eliminated := make(cellset.Set)
		for c := range s.candidates[sid] {
			if pos, ok := s.trackPosition(c); ok && pos <= peerMin {
				eliminated[c] = struct{}{}
			}
		}
		if step := s.applyDynamic(sid, constants.TechniqueRoomConstraint, eliminated,
			fmt.Sprintf("%s must be ahead of %s on the track", sid, other)); step != nil {
			return step
		}
	}

	if _, done := s.placed[other]; done {
		return nil
	}
	myMax, haveMyMax := s.maxTrackPosition(sid)
	if !haveMyMax {
		return nil
	}
	eliminatedOther := make(cellset.Set)
	for c := range s.candidates[other] {
		if pos, ok := s.trackPosition(c); ok && pos >= myMax {
			eliminatedOther[c] = struct{}{}
		}
	}
	return s.applyDynamic(other, constants.TechniqueRoomConstraint, eliminatedOther,
		fmt.Sprintf("%s must be behind %s on the track", other, sid))
}

func (s *Solver) trackPosition(cell int) (int, bool) {
	pos, ok := s.puzzle.TrackPositions[s.index.Key(cell)]
	return pos, ok
}

func (s *Solver) minTrackPosition(sid string) (int, bool) {
	min, found := 0, false
	for c := range s.candidatesOrPlaced(sid) {
		if pos, ok := s.trackPosition(c); ok {
			if !found || pos < min {
				min, found = pos, true
			}
		}
	}
	return min, found
}

func (s *Solver) maxTrackPosition(sid string) (int, bool) {
	max, found := 0, false
	for c := range s.candidatesOrPlaced(sid) {
		if pos, ok := s.trackPosition(c); ok {
			if !found || pos > max {
				max, found = pos, true
			}
		}
	}
	return max, found
}

// applyDynamic restricts sid's candidates by removing eliminated, logging
// and returning a step if that actually changed anything.
func (s *Solver) applyDynamic(sid, technique string, eliminated cellset.Set, message string) *core.SolveStep {
	if len(eliminated) == 0 {
		return nil
	}
	remaining := cellset.Subtract(s.candidates[sid], eliminated)
	applied := s.restrict(sid, remaining)
	if len(applied) == 0 {
		return nil
	}
	return s.logElimination(technique, sid, applied, message)
}
