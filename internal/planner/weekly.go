package planner

import "github.com/pageza/nutriplan/backend/internal/catalog"

// Weekdays in plan order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayPlan holds one food name per slot for a single day. A slot with nothing
// recommended is left out.
type DayPlan struct {
	Day   string                  `json:"day"`
	Meals map[catalog.Slot]string `json:"meals"`
}

// WeeklyRotation cycles through each slot's recommended foods so that day i
// gets item i modulo the number of items.
func WeeklyRotation(plan DietPlan) []DayPlan {
	week := make([]DayPlan, 0, len(Weekdays))
	for i, day := range Weekdays {
		d := DayPlan{Day: day, Meals: make(map[catalog.Slot]string, len(catalog.Slots))}
		for _, slot := range catalog.Slots {
			items := plan.Meal(slot).Items
			if len(items) == 0 {
				continue
			}
			d.Meals[slot] = items[i%len(items)].Name
		}
		week = append(week, d)
	}
	return week
}
