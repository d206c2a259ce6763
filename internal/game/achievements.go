package game

import (
	"fmt"
	"strconv"
	"strings"
)

// EvaluateAchievements runs a stateless pass over every locked title in
// catalog order, unlocking each one whose condition now holds. Returns
// the ids unlocked by this pass.
func (e *Engine) EvaluateAchievements(st *State) []string {
	var unlocked []string
	for _, title := range e.Content.Titles {
		if st.HasTitle(title.ID) {
			continue
		}
		ok, err := evalCondition(st.Stats, title.Condition)
		if err != nil {
			e.Log.Warn("bad title condition", "title", title.ID, "condition", title.Condition, "error", err)
			continue
		}
		if !ok {
			continue
		}
		if st.UnlockTitle(title.ID) {
			st.appendEvent(EventAchievement, fmt.Sprintf("Title unlocked: %s", title.Name))
			unlocked = append(unlocked, title.ID)
		}
	}
	return unlocked
}

// HasTitle reports whether the title is already unlocked.
func (s *State) HasTitle(id string) bool {
	for _, t := range s.UnlockedTitles {
		if t == id {
			return true
		}
	}
	return false
}

// evalCondition parses and evaluates "<statName> <op> <integer>".
func evalCondition(stats Stats, cond string) (bool, error) {
	fields := strings.Fields(cond)
	if len(fields) != 3 {
		return false, fmt.Errorf("want \"<stat> <op> <n>\", got %q", cond)
	}
	value, ok := stats.Value(fields[0])
	if !ok {
		return false, fmt.Errorf("unknown stat %q", fields[0])
	}
	target, err := strconv.Atoi(fields[2])
	if err != nil {
		return false, fmt.Errorf("bad target %q", fields[2])
	}
	switch fields[1] {
	case ">=":
		return value >= target, nil
	case "<=":
		return value <= target, nil
	case ">":
		return value > target, nil
	case "<":
		return value < target, nil
	case "==":
		return value == target, nil
	}
	return false, fmt.Errorf("unknown operator %q", fields[1])
}
