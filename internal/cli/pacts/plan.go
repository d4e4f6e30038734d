package pacts

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/julianstephens/pactly/internal/agent"
	"github.com/julianstephens/pactly/internal/cli"
)

// PlanCmd asks the planning agent for micro-goals, nudges and a weekly plan
// and applies them to the pact. A failed call is reported once; run the
// command again to retry.
type PlanCmd struct {
	ID       string            `arg:"" help:"Pact id."`
	Feedback map[string]string `help:"Extra supporter feedback as name=text pairs."`
	DryRun   bool              `help:"Show the plan without saving it."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}

	var extra []agent.SupporterFeedback
	for _, name := range slices.Sorted(maps.Keys(c.Feedback)) {
		extra = append(extra, agent.SupporterFeedback{SupporterName: name, Feedback: c.Feedback[name]})
	}

	ctx.Printf("Asking %s for a plan...\n", ctx.Agent.Endpoint())
	res := ctx.Agent.Generate(bg, agent.BuildRequest(*p, user, extra))
	planRes, ok := res.(agent.PlanResult)
	if !ok {
		return errors.New(agent.Message(res))
	}
	plan := planRes.Plan

	ctx.Printf("Stage: %s\n", plan.BehavioralState)
	if plan.IdentityAffirmation != "" {
		ctx.Printf("%s\n", plan.IdentityAffirmation)
	}
	for _, g := range plan.MicroGoals {
		ctx.Printf("  • %s (%s)\n", g.GoalText, g.Difficulty)
	}
	if c.DryRun {
		ctx.Println(cli.Warn("Dry run, nothing saved."))
		return nil
	}

	ctx.PerformAutomaticBackup(bg)
	updated := ctx.Pacts.ApplyPlan(bg, c.ID, plan)
	ctx.Printf("✓ Plan applied: %d micro-goals, %d nudges, %d plan days\n",
		len(updated.MicroGoals), len(updated.Nudges), len(updated.WeeklyPlan))
	return nil
}
