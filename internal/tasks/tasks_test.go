package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/testutil"
)

func TestBucketsFollowBackendIDLists(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.Tasks = api.WorkshopTasksResponse{
		Tasks: []api.Task{
			{ID: "t1", Title: "Cut frames"},
			{ID: "t2", Title: "Fit door 4"},
			{ID: "t3", Title: "Old job"},
		},
		DueTodayIDs: []string{"t1", "t2"},
		OverdueIDs:  []string{"t3"},
	}

	src := NewSource(b.Client())
	buckets, err := src.Buckets(context.Background())
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}

	if len(buckets.DueToday) != 2 {
		t.Errorf("due today: got %d, want 2", len(buckets.DueToday))
	}
	if len(buckets.Overdue) != 1 || buckets.Overdue[0].ID != "t3" {
		t.Errorf("overdue: got %v", buckets.Overdue)
	}
}

func TestBucketsDateFallbackWhenNoIDLists(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	laterToday := now.Add(3 * time.Hour)
	nextWeek := now.AddDate(0, 0, 7)

	b := testutil.NewFakeBackend(t)
	b.Tasks = api.WorkshopTasksResponse{
		Tasks: []api.Task{
			{ID: "t1", Title: "Overdue", DueAt: &yesterday},
			{ID: "t2", Title: "Today", DueAt: &laterToday},
			{ID: "t3", Title: "Future", DueAt: &nextWeek},
			{ID: "t4", Title: "No due date"},
		},
	}

	src := NewSource(b.Client())
	src.now = func() time.Time { return now }

	buckets, err := src.Buckets(context.Background())
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}

	if len(buckets.Overdue) != 1 || buckets.Overdue[0].ID != "t1" {
		t.Errorf("overdue: got %v", buckets.Overdue)
	}
	if len(buckets.DueToday) != 1 || buckets.DueToday[0].ID != "t2" {
		t.Errorf("due today: got %v", buckets.DueToday)
	}
}

func TestProjectIDOnlyForOpportunityRelations(t *testing.T) {
	if got := ProjectID(api.Task{RelatedType: "opportunity", RelatedID: "p1"}); got != "p1" {
		t.Errorf("opportunity relation: got %q, want p1", got)
	}
	if got := ProjectID(api.Task{RelatedType: "contact", RelatedID: "c1"}); got != "" {
		t.Errorf("contact relation: got %q, want empty", got)
	}
}

func TestAssignAndClearProcess(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	src := NewSource(b.Client())

	if err := src.AssignProcess(context.Background(), "t1", "CUTTING"); err != nil {
		t.Fatalf("AssignProcess: %v", err)
	}
	if err := src.ClearProcess(context.Background(), "t1"); err != nil {
		t.Fatalf("ClearProcess: %v", err)
	}
	if got := b.CallCount("PATCH /tasks/t1"); got != 2 {
		t.Errorf("PATCH /tasks/t1 calls: got %d, want 2", got)
	}
}
