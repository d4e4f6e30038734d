package pact

import (
	"context"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/agent"
	"github.com/julianstephens/pactly/internal/models"
)

// ApplyPlan replaces the pact's goals, nudges and weekly plan with the ones
// an agent produced. Goal difficulties the model does not know become medium.
func (s *Service) ApplyPlan(ctx context.Context, pactID string, plan agent.Plan) *models.Pact {
	goals := make([]models.MicroGoal, 0, len(plan.MicroGoals))
	for _, g := range plan.MicroGoals {
		goals = append(goals, models.MicroGoal{
			ID:                uuid.NewString(),
			GoalText:          g.GoalText,
			Difficulty:        difficulty(g.Difficulty),
			DueDate:           g.DueDate,
			Reasoning:         g.Reasoning,
			MeasurableOutcome: g.MeasurableOutcome,
		})
	}

	nudges := make([]models.Nudge, 0, len(plan.Nudges))
	for _, n := range plan.Nudges {
		nudges = append(nudges, models.Nudge{
			ID:                  uuid.NewString(),
			NudgeText:           n.NudgeText,
			BehavioralPrinciple: n.BehavioralPrinciple,
		})
	}

	days := make([]models.WeeklyPlanDay, 0, len(plan.WeeklyPlan))
	for _, d := range plan.WeeklyPlan {
		days = append(days, models.WeeklyPlanDay{
			Day:             d.Day,
			MicroGoal:       d.MicroGoal,
			Reminder:        d.Reminder,
			SupporterPrompt: d.SupporterPrompt,
		})
	}

	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		p.BehavioralState = plan.BehavioralState
		p.IdentityAffirmation = plan.IdentityAffirmation
		p.MicroGoals = goals
		p.Nudges = nudges
		p.WeeklyPlan = days
		p.CompletionRate = models.CompletionRate(p.MicroGoals)
		return true
	})
}

func difficulty(s string) models.Difficulty {
	switch d := models.Difficulty(s); d {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return d
	}
	return models.DifficultyMedium
}
