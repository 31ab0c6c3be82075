package rules

// Tag is a dietary constraint derived from a profile.
type Tag string

const (
	Diabetic        Tag = "diabetic"
	PreDiabetic     Tag = "pre-diabetic"
	LowSodium       Tag = "low-sodium"
	HeartHealthy    Tag = "heart-healthy"
	WeightLoss      Tag = "weight-loss"
	WeightGain      Tag = "weight-gain"
	LowActivity     Tag = "low-activity"
	HighProtein     Tag = "high-protein"
	StressRelief    Tag = "stress-relief"
	SleepSupport    Tag = "sleep-support"
	Senior          Tag = "senior"
	Vegetarian      Tag = "vegetarian"
	Vegan           Tag = "vegan"
	Renal           Tag = "renal"
	PCOS            Tag = "pcos"
	GastricFriendly Tag = "gastric-friendly"
	ThyroidCare     Tag = "thyroid-care"
	GlutenFree      Tag = "gluten-free"
	LactoseFree     Tag = "lactose-free"
	NutFree         Tag = "nut-free"
	SoyFree         Tag = "soy-free"
	EggFree         Tag = "egg-free"
	SeafoodFree     Tag = "seafood-free"
	GeneralHealthy  Tag = "general-healthy"
)

// KnownTags lists every tag the engine can produce.
var KnownTags = []Tag{
	Diabetic, PreDiabetic, LowSodium, HeartHealthy, WeightLoss, WeightGain,
	LowActivity, HighProtein, StressRelief, SleepSupport, Senior,
	Vegetarian, Vegan, Renal, PCOS, GastricFriendly, ThyroidCare,
	GlutenFree, LactoseFree, NutFree, SoyFree, EggFree, SeafoodFree,
	GeneralHealthy,
}

// TagSet is an ordered set of tags. Order is the order tags were first added.
type TagSet []Tag

// NewTagSet builds a set from tags, dropping duplicates.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool {
	for _, x := range s {
		if x == t {
			return true
		}
	}
	return false
}

// With returns the set with t added. The receiver is never modified.
func (s TagSet) With(t Tag) TagSet {
	if s.Has(t) {
		return s
	}
	out := make(TagSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, t)
}

// Strings returns the tags as plain strings.
func (s TagSet) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}
