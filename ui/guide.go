package ui

// GuideEntry is one row of the gesture guide.
type GuideEntry struct {
	Gesture string
	Shape   string
	Desc    string
}

// Guide lists every gesture the tracker understands.
var Guide = []GuideEntry{
	{"0-1 FINGERS", "SPHERE", "Default state"},
	{"2 FINGERS", "FLOWER", "Rose curve symmetry"},
	{"3 FINGERS", "SATURN", "Planetary ring formation"},
	{"4 FINGERS", "HEART", "Parametric affection"},
	{"5 FINGERS", "FIREWORKS", "Entropy burst"},
	{"PINCH / CLICK", "ATTRACT", "Pull matter toward focus"},
}
