package service

// levelThresholds holds the minimum total points for each level, in
// ascending order. Index 0 is level 1 and is always satisfied.
var levelThresholds = []int64{0, 5, 20, 70, 150, 500, 2000, 8000, 30000, 50000}

type LevelInfo struct {
	Level     int   `json:"level"`
	MinPoints int64 `json:"minPoints"`
	Unlocked  bool  `json:"unlocked"`
}

// levelFor maps a point total to its 1-based level, the level's minimum
// and the next level's minimum (nil at the top level). Negative input is
// treated as zero.
func levelFor(totalPoints int64) (level int, currentMin int64, nextMin *int64) {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level = 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalPoints >= levelThresholds[i] {
			level = i + 1
			break
		}
	}
	currentMin = levelThresholds[level-1]
	if level < len(levelThresholds) {
		next := levelThresholds[level]
		nextMin = &next
	}
	return level, currentMin, nextMin
}

// levelsOverview reports every level with its unlock state for the given
// point total, in table order.
func levelsOverview(totalPoints int64) []LevelInfo {
	if totalPoints < 0 {
		totalPoints = 0
	}
	overview := make([]LevelInfo, 0, len(levelThresholds))
	for i, min := range levelThresholds {
		overview = append(overview, LevelInfo{
			Level:     i + 1,
			MinPoints: min,
			Unlocked:  totalPoints >= min,
		})
	}
	return overview
}
