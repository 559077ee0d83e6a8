package wizard

// Step identifies one stage of the lineup editing flow.
type Step string

const (
	StepMatchInfo     Step = "matchInfo"
	StepTeamSelection Step = "teamSelection"
	StepSummary       Step = "summary"
	StepMatchResults  Step = "matchResults"
)

// stepOrder is the strictly linear sequence; no skipping in either direction.
var stepOrder = [4]Step{StepMatchInfo, StepTeamSelection, StepSummary, StepMatchResults}

func stepIndex(s Step) int {
	for i, candidate := range stepOrder {
		if candidate == s {
			return i
		}
	}
	return 0
}
