package schedule

import "time"

// FindScheduleToStartVoting возвращает первое расписание, для которого
// голосование нужно открыть ровно в эту минуту.
// activeVotings - множество расписаний, у которых уже есть ACTIVE голосование.
func FindScheduleToStartVoting(now time.Time, schedules []GameSchedule, activeVotings map[ScheduleID]bool) (*GameSchedule, bool) {
	for i := range schedules {
		if shouldStartVoting(now, schedules[i], activeVotings) {
			s := schedules[i]
			return &s, true
		}
	}
	return nil, false
}

// FindSchedulesToStartVoting - то же самое, но возвращает все совпадения в исходном порядке.
func FindSchedulesToStartVoting(now time.Time, schedules []GameSchedule, activeVotings map[ScheduleID]bool) []GameSchedule {
	var matched []GameSchedule
	for _, s := range schedules {
		if shouldStartVoting(now, s, activeVotings) {
			matched = append(matched, s)
		}
	}
	return matched
}

func shouldStartVoting(now time.Time, s GameSchedule, activeVotings map[ScheduleID]bool) bool {
	if s.State != StateActive {
		return false
	}
	if activeVotings[s.ID] {
		return false
	}
	// Совпадение только с точностью до минуты: пропущенный тик не догоняется.
	return now.Weekday() == s.VotingDay() && s.VotingTime.SameMinute(now)
}
