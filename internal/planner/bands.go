// Package planner turns a student's data into meeting topics, time-boxed
// agendas, a plain-text fallback agenda, and the scheduling wizard state.
// Everything here is pure: callers pass the current time explicitly.
package planner

// GradeBand is the fixed topic template for one grade level.
type GradeBand struct {
	Grade    int
	Name     string
	Exposure string

	StandardTopic       string
	StandardDescription string
	// Checkpoints are the milestones a counselor reviews at this grade.
	Checkpoints []string

	// DeadlineWindowDays bounds how far ahead an open milestone counts as
	// deadline-sensitive for this band.
	DeadlineWindowDays int
	DeadlineTopicLabel string
}

var gradeBands = map[int]GradeBand{
	9: {
		Grade:               9,
		Name:                "Discovery",
		Exposure:            "Awareness",
		StandardTopic:       "Discovery: Interests and Course Alignment",
		StandardDescription: "Connect personality quiz results and values to course selection and extracurricular engagement.",
		Checkpoints: []string{
			"Personality Quiz, Life Map, Who Am I? Statement",
			"Portfolio: Strengths, Interests, Values",
			"Mission Statement + Action Plan",
		},
		DeadlineWindowDays: 60,
		DeadlineTopicLabel: "Upcoming checkpoint",
	},
	10: {
		Grade:               10,
		Name:                "Exploration",
		Exposure:            "Engagement",
		StandardTopic:       "Exploration: Career Matrix Review",
		StandardDescription: "Review career exploration progress and whether Career Matrix choices are grounded in interests and values.",
		Checkpoints: []string{
			"Durable Skills Quiz",
			"Career Vision, Career Evaluation Matrix",
			"3 Careers bookmarked + added to Matrix",
			"Impact Project (Proposal, Presentation, Careers)",
			"1 Career Interview or Job Shadow",
		},
		DeadlineWindowDays: 60,
		DeadlineTopicLabel: "Upcoming checkpoint",
	},
	11: {
		Grade:               11,
		Name:                "Launch",
		Exposure:            "Experience",
		StandardTopic:       "Launch: Balanced List and Personal Statement",
		StandardDescription: "Calibrate the reach/match/safety list and check personal statement and resume progress before senior year.",
		Checkpoints: []string{
			"Polished Resume",
			"Balanced List (8 schools/programs)",
			"Program Comparison Matrix with rationale",
			"Application-Ready Personal Statement",
		},
		DeadlineWindowDays: 45,
		DeadlineTopicLabel: "Planning deadline",
	},
	12: {
		Grade:               12,
		Name:                "Launch",
		Exposure:            "Experience",
		StandardTopic:       "Launch: Applications and Financial Aid",
		StandardDescription: "Check what is submitted and pending, FAFSA and scholarship progress, and transition readiness.",
		Checkpoints: []string{
			"FAFSA submitted",
			"Scholarship applications submitted",
			"Applications submitted (college or trade/apprenticeship)",
			"Postsecondary Decision Defense",
		},
		DeadlineWindowDays: 30,
		DeadlineTopicLabel: "Application deadline",
	},
}

// BandFor returns the template for a grade, or false outside grades 9-12.
func BandFor(grade int) (GradeBand, bool) {
	b, ok := gradeBands[grade]
	return b, ok
}
