// Package tasks exposes the workshop task source: due-today and overdue
// buckets, task completion, and process assignment via task meta.
package tasks

import (
	"context"
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/api"
)

// RelatedTypeOpportunity marks a task linked to a project through an
// opportunity relation; RelatedID is then usable as a project id.
const RelatedTypeOpportunity = "opportunity"

// Buckets groups the user's workshop tasks for display.
type Buckets struct {
	DueToday []api.Task
	Overdue  []api.Task
}

// Source fetches and mutates workshop tasks through the backend.
type Source struct {
	client *api.Client
	now    func() time.Time
}

// NewSource creates a Source backed by the given client.
func NewSource(client *api.Client) *Source {
	return &Source{client: client, now: time.Now}
}

// Buckets fetches the workshop tasks and splits them into due-today and
// overdue. Membership follows the backend's id lists; tasks the lists do
// not mention fall back to a local date comparison.
func (s *Source) Buckets(ctx context.Context) (*Buckets, error) {
	resp, err := s.client.WorkshopTasks(ctx)
	if err != nil {
		return nil, err
	}

	dueToday := make(map[string]bool, len(resp.DueTodayIDs))
	for _, id := range resp.DueTodayIDs {
		dueToday[id] = true
	}
	overdue := make(map[string]bool, len(resp.OverdueIDs))
	for _, id := range resp.OverdueIDs {
		overdue[id] = true
	}
	listed := len(resp.DueTodayIDs) > 0 || len(resp.OverdueIDs) > 0

	var b Buckets
	for _, t := range resp.Tasks {
		switch {
		case dueToday[t.ID]:
			b.DueToday = append(b.DueToday, t)
		case overdue[t.ID]:
			b.Overdue = append(b.Overdue, t)
		case !listed:
			s.bucketByDate(&b, t)
		}
	}
	return &b, nil
}

// bucketByDate is the local fallback when the backend sent no id lists.
func (s *Source) bucketByDate(b *Buckets, t api.Task) {
	if t.DueAt == nil {
		return
	}
	now := s.now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch {
	case t.DueAt.Before(startOfDay):
		b.Overdue = append(b.Overdue, t)
	case t.DueAt.Before(startOfDay.AddDate(0, 0, 1)):
		b.DueToday = append(b.DueToday, t)
	}
}

// Complete marks the task done, with optional notes.
func (s *Source) Complete(ctx context.Context, id, notes string) error {
	return s.client.CompleteTask(ctx, id, notes)
}

// AssignProcess sets the task's process code so it can be started from.
func (s *Source) AssignProcess(ctx context.Context, id, code string) error {
	return s.client.UpdateTaskMeta(ctx, id, api.TaskMeta{ProcessCode: code})
}

// ClearProcess removes the task's process assignment.
func (s *Source) ClearProcess(ctx context.Context, id string) error {
	return s.client.UpdateTaskMeta(ctx, id, api.TaskMeta{})
}

// ProjectID returns the project a task is linked to, if its relation
// points at one through an opportunity.
func ProjectID(t api.Task) string {
	if t.RelatedType == RelatedTypeOpportunity {
		return t.RelatedID
	}
	return ""
}
