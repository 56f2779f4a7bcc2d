package rating

import "github.com/PradipLalpura/RexOS/internal/model"

// WeeklyConsistency awards half a point per date with any completed habit and
// half a point per date with any workout exercise entry, as a percentage of
// len(dateList). An empty list scores 0.
func WeeklyConsistency(s model.RexState, dateList []string) float64 {
	if len(dateList) == 0 {
		return 0
	}
	var points float64
	for _, date := range dateList {
		if record, ok := s.HabitRecord(date); ok && CompletedHabits(record) > 0 {
			points += 0.5
		}
		if log, ok := s.WorkoutLogFor(date); ok && len(log.Exercises) > 0 {
			points += 0.5
		}
	}
	return points / float64(len(dateList)) * 100
}

type Verdict struct {
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

func WeeklyVerdict(consistency float64) Verdict {
	switch {
	case consistency >= 90:
		return Verdict{Tier: TierExcellent, Message: "EXCEPTIONAL WEEK. You executed at an elite level. Maintain this dominance."}
	case consistency >= 75:
		return Verdict{Tier: TierGood, Message: "STRONG WEEK. Solid execution across the board. Push for perfection next week."}
	case consistency >= 50:
		return Verdict{Tier: TierWarning, Message: "AVERAGE WEEK. Room for significant improvement. Recommit to the process."}
	default:
		return Verdict{Tier: TierDanger, Message: "BELOW STANDARD. This is not who you are. Reset and dominate next week."}
	}
}
