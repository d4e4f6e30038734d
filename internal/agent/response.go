package agent

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Plan is a successful agent response.
type Plan struct {
	BehavioralState        string                 `json:"behavioral_state"`
	IdentityAffirmation    string                 `json:"identity_affirmation"`
	MicroGoals             []PlanGoal             `json:"micro_goals"`
	Nudges                 []PlanNudge            `json:"nudges"`
	WeeklyPlan             []PlanDay              `json:"weekly_plan"`
	Explanations           Explanations           `json:"explanations"`
	DifficultyDistribution DifficultyDistribution `json:"difficulty_distribution"`
}

type PlanGoal struct {
	GoalText          string `json:"goal_text"`
	Difficulty        string `json:"difficulty"`
	DueDate           string `json:"due_date"`
	Reasoning         string `json:"reasoning"`
	MeasurableOutcome string `json:"measurable_outcome"`
}

type PlanNudge struct {
	NudgeText           string `json:"nudge_text"`
	BehavioralPrinciple string `json:"behavioral_principle"`
}

type PlanDay struct {
	Day             string `json:"day"`
	MicroGoal       string `json:"micro_goal"`
	Reminder        string `json:"reminder"`
	SupporterPrompt string `json:"supporter_prompt"`
}

type Explanations struct {
	PactInterpretation string `json:"pact_interpretation"`
	BehaviorInsights   string `json:"behavior_insights"`
	SupporterInsights  string `json:"supporter_insights"`
}

type DifficultyDistribution struct {
	EasyPercent   int `json:"easy_percent"`
	MediumPercent int `json:"medium_percent"`
	HardPercent   int `json:"hard_percent"`
}

// Result is one of PlanResult, FailureResult or NotRecognized.
type Result interface {
	isResult()
}

// PlanResult carries a parsed plan.
type PlanResult struct {
	Plan Plan
}

// FailureResult carries a message to show the user verbatim.
type FailureResult struct {
	Message string
}

// NotRecognized means no known response shape matched.
type NotRecognized struct {
	Raw string
}

func (PlanResult) isResult()    {}
func (FailureResult) isResult() {}
func (NotRecognized) isResult() {}

const UnexpectedFormat = "unexpected response format"

// Message returns the user-facing text for a non-plan result.
func Message(r Result) string {
	switch v := r.(type) {
	case FailureResult:
		return v.Message
	case NotRecognized:
		return UnexpectedFormat
	default:
		return ""
	}
}

// maxResultDepth bounds how many nested "result" wrappers are unwrapped.
const maxResultDepth = 2

// ParseResponse classifies a raw agent body. Shapes are tried in order: the
// plan object itself, one level of JSON-in-a-string, then up to two nested
// "result" wrappers. A body that is not JSON at all is a failure message.
func ParseResponse(raw []byte) Result {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return NotRecognized{Raw: string(raw)}
	}
	if !json.Valid(trimmed) {
		return FailureResult{Message: string(trimmed)}
	}
	return parseValue(trimmed, false, 0)
}

func parseValue(data []byte, stringDecoded bool, depth int) Result {
	switch data[0] {
	case '{':
		return parseObject(data, stringDecoded, depth)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return NotRecognized{Raw: string(data)}
		}
		inner := bytes.TrimSpace([]byte(s))
		if len(inner) == 0 {
			return NotRecognized{Raw: string(data)}
		}
		if !json.Valid(inner) {
			// A plain string is the agent's error text.
			return FailureResult{Message: s}
		}
		if stringDecoded {
			return NotRecognized{Raw: string(data)}
		}
		return parseValue(inner, true, depth)
	default:
		return NotRecognized{Raw: string(data)}
	}
}

func parseObject(data []byte, stringDecoded bool, depth int) Result {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return NotRecognized{Raw: string(data)}
	}

	if isPlanShape(fields) {
		var plan Plan
		if err := json.Unmarshal(data, &plan); err != nil {
			return NotRecognized{Raw: string(data)}
		}
		return PlanResult{Plan: plan}
	}

	// a result envelope may carry status text beside the plan
	if inner, ok := fields["result"]; ok && depth < maxResultDepth {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 {
			if res := parseValue(inner, stringDecoded, depth+1); !isNotRecognized(res) {
				return res
			}
		}
	}

	if msg, ok := errorMessage(fields); ok {
		return FailureResult{Message: msg}
	}
	return NotRecognized{Raw: string(data)}
}

func isNotRecognized(res Result) bool {
	_, ok := res.(NotRecognized)
	return ok
}

func isPlanShape(fields map[string]json.RawMessage) bool {
	_, goals := fields["micro_goals"]
	_, state := fields["behavioral_state"]
	return goals || state
}

// errorMessage reads "error", or "message" unless a status field says the
// call succeeded.
func errorMessage(fields map[string]json.RawMessage) (string, bool) {
	keys := []string{"error"}
	if !succeeded(fields) {
		keys = append(keys, "message")
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, true
		}
	}
	return "", false
}

func succeeded(fields map[string]json.RawMessage) bool {
	raw, ok := fields["status"]
	if !ok {
		return false
	}
	var status string
	if err := json.Unmarshal(raw, &status); err != nil {
		return false
	}
	switch strings.ToLower(status) {
	case "success", "succeeded", "ok":
		return true
	}
	return false
}
