package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/pactly/internal/models"
)

// ConflictType names a kind of stored-data inconsistency
type ConflictType string

const (
	ConflictCompletionRateDrift  ConflictType = "completion_rate_drift"
	ConflictNegativeStreak       ConflictType = "negative_streak"
	ConflictUnknownStatus        ConflictType = "unknown_status"
	ConflictDuplicateReflection  ConflictType = "duplicate_reflection"
	ConflictLikesDrift           ConflictType = "likes_drift"
	ConflictDuplicateMember      ConflictType = "duplicate_member"
	ConflictDuplicateParticipant ConflictType = "duplicate_participant"
	ConflictDuplicateID          ConflictType = "duplicate_id"
)

// Conflict is one detected inconsistency
type Conflict struct {
	Type        ConflictType
	Description string
	EntityID    string // pact or room id
	ChildID     string // goal, post or challenge id (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction describes one repair made by Fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends other's conflicts.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks stored collections against the domain invariants
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidatePacts checks every pact for derived-field drift and bad enum values.
func (v *Validator) ValidatePacts(pacts []models.Pact) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool)
	for _, p := range pacts {
		if seen[p.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Pact id %s is used more than once", p.ID),
				EntityID:    p.ID,
			})
		}
		seen[p.ID] = true

		if want := models.CompletionRate(p.MicroGoals); p.CompletionRate != want {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCompletionRateDrift,
				Description: fmt.Sprintf("Pact %q completion rate is %d%%, goals say %d%%", p.Title, p.CompletionRate, want),
				EntityID:    p.ID,
			})
		}

		if p.Streak < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeStreak,
				Description: fmt.Sprintf("Pact %q has negative streak %d", p.Title, p.Streak),
				EntityID:    p.ID,
			})
		}

		if !models.ValidStatus(p.Status) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownStatus,
				Description: fmt.Sprintf("Pact %q has unknown status %q", p.Title, p.Status),
				EntityID:    p.ID,
			})
		}

		for _, ver := range p.Verifications {
			switch ver.Status {
			case models.VerificationPending, models.VerificationVerified, models.VerificationDisputed:
			default:
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownStatus,
					Description: fmt.Sprintf("Verification %s on pact %q has unknown status %q", ver.ID, p.Title, ver.Status),
					EntityID:    p.ID,
					ChildID:     ver.ID,
				})
			}
		}

		weeks := make(map[int]int)
		for _, r := range p.Reflections {
			weeks[r.WeekNumber]++
		}
		dupWeeks := make([]int, 0)
		for week, n := range weeks {
			if n > 1 {
				dupWeeks = append(dupWeeks, week)
			}
		}
		sort.Ints(dupWeeks)
		for _, week := range dupWeeks {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateReflection,
				Description: fmt.Sprintf("Pact %q has %d reflections for week %d", p.Title, weeks[week], week),
				EntityID:    p.ID,
			})
		}
	}

	return result
}

// ValidateRooms checks like counters, membership lists and challenge rosters.
func (v *Validator) ValidateRooms(rooms []models.Room) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, r := range rooms {
		if dups := duplicates(r.Members); len(dups) > 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateMember,
				Description: fmt.Sprintf("Room %q lists members more than once: %v", r.Name, dups),
				EntityID:    r.ID,
			})
		}

		for _, post := range r.Posts {
			if post.Likes != len(post.LikedBy) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictLikesDrift,
					Description: fmt.Sprintf("Post %s in room %q has %d likes but %d likers", post.ID, r.Name, post.Likes, len(post.LikedBy)),
					EntityID:    r.ID,
					ChildID:     post.ID,
				})
			}
		}

		for _, c := range r.Challenges {
			ids := make([]string, len(c.Participants))
			for i, p := range c.Participants {
				ids[i] = p.UserID
			}
			if dups := duplicates(ids); len(dups) > 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateParticipant,
					Description: fmt.Sprintf("Challenge %q in room %q lists participants more than once: %v", c.Title, r.Name, dups),
					EntityID:    r.ID,
					ChildID:     c.ID,
				})
			}
		}
	}

	return result
}

// FixPacts repairs completion-rate drift in place. Other pact conflicts need
// a human decision and are left alone.
func (v *Validator) FixPacts(pacts []models.Pact, result ValidationResult) []FixAction {
	var actions []FixAction
	for _, c := range result.Conflicts {
		if c.Type != ConflictCompletionRateDrift {
			continue
		}
		for i := range pacts {
			if pacts[i].ID != c.EntityID {
				continue
			}
			want := models.CompletionRate(pacts[i].MicroGoals)
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Set completion rate of %q from %d%% to %d%%", pacts[i].Title, pacts[i].CompletionRate, want),
				SourceConflict: c,
			})
			pacts[i].CompletionRate = want
		}
	}
	return actions
}

// FixRooms recounts likes and drops duplicate members and participants in place.
func (v *Validator) FixRooms(rooms []models.Room, result ValidationResult) []FixAction {
	var actions []FixAction
	for _, c := range result.Conflicts {
		for i := range rooms {
			if rooms[i].ID != c.EntityID {
				continue
			}
			r := &rooms[i]
			switch c.Type {
			case ConflictLikesDrift:
				for j := range r.Posts {
					if r.Posts[j].ID == c.ChildID {
						r.Posts[j].LikedBy = unique(r.Posts[j].LikedBy)
						r.Posts[j].Likes = len(r.Posts[j].LikedBy)
						actions = append(actions, FixAction{Action: fmt.Sprintf("Recounted likes on post %s", c.ChildID), SourceConflict: c})
					}
				}
			case ConflictDuplicateMember:
				r.Members = unique(r.Members)
				actions = append(actions, FixAction{Action: fmt.Sprintf("Removed duplicate members from room %q", r.Name), SourceConflict: c})
			case ConflictDuplicateParticipant:
				for j := range r.Challenges {
					if r.Challenges[j].ID == c.ChildID {
						r.Challenges[j].Participants = uniqueParticipants(r.Challenges[j].Participants)
						actions = append(actions, FixAction{Action: fmt.Sprintf("Removed duplicate participants from challenge %q", r.Challenges[j].Title), SourceConflict: c})
					}
				}
			}
		}
	}
	return actions
}

func duplicates(ids []string) []string {
	count := make(map[string]int)
	var out []string
	for _, id := range ids {
		count[id]++
		if count[id] == 2 {
			out = append(out, id)
		}
	}
	return out
}

func unique(ids []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// uniqueParticipants keeps the first entry per user.
func uniqueParticipants(ps []models.ChallengeParticipant) []models.ChallengeParticipant {
	seen := make(map[string]bool)
	out := make([]models.ChallengeParticipant, 0, len(ps))
	for _, p := range ps {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			out = append(out, p)
		}
	}
	return out
}
