package planner

import (
	"fmt"

	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/rules"
)

// Tips are preparation and lifestyle suggestions attached to a plan.
type Tips struct {
	Preparation []string `json:"preparation"`
	Lifestyle   []string `json:"lifestyle"`
}

// BuildTips derives tips from the profile, its active tags and the targets.
func BuildTips(p profile.UserProfile, tags rules.TagSet, t Targets) Tips {
	prep := []string{
		"Prefer steaming, grilling or baking over deep frying.",
		"Use herbs, spices and citrus for flavour instead of extra salt or sugar.",
		"Batch cook grains and legumes to make balanced meals easier during the week.",
	}
	if tags.Has(rules.LowSodium) {
		prep = append(prep, "Cook without added salt and check labels on sauces and packaged foods.")
	}
	if tags.Has(rules.Diabetic) || tags.Has(rules.PreDiabetic) {
		prep = append(prep, "Choose whole grains and pair carbohydrates with protein or fiber to blunt glucose spikes.")
	}
	if tags.Has(rules.HeartHealthy) {
		prep = append(prep, "Swap butter and ghee for small amounts of olive or mustard oil.")
	}
	if tags.Has(rules.Senior) {
		prep = append(prep, "Cook vegetables until tender and keep portions small and frequent.")
	}
	if tags.Has(rules.Renal) {
		prep = append(prep, "Soak and boil vegetables and drain the water to cut their potassium.")
	}
	if tags.Has(rules.GastricFriendly) {
		prep = append(prep, "Keep meals mild, skip chilli and eat smaller portions at regular times.")
	}
	if tags.Has(rules.GlutenFree) || tags.Has(rules.LactoseFree) || tags.Has(rules.NutFree) ||
		tags.Has(rules.SoyFree) || tags.Has(rules.EggFree) || tags.Has(rules.SeafoodFree) {
		prep = append(prep, "Read ingredient labels on packaged foods for hidden allergens.")
	}

	life := []string{fmt.Sprintf("Drink about %.1f L of water a day, spread evenly and more around activity.", t.WaterLiters)}
	if p.SleepHours < 7 {
		life = append(life, "Aim for 7 to 8 hours of sleep for metabolic health.")
	}
	if p.ActivityLevel == profile.Sedentary {
		life = append(life, "Add 30 to 45 minutes of brisk activity on most days.")
	}
	if p.StressLevel == profile.HighStress {
		life = append(life, "Set aside 10 to 15 minutes a day for breathing exercises or meditation.")
	}
	return Tips{Preparation: prep, Lifestyle: life}
}
