package applications

import (
	"testing"
	"time"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	apps := []Application{
		{ID: "1", Status: StatusApplied, AppliedAt: time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "2", Status: StatusApplied, AppliedAt: time.Date(2024, time.February, 1, 18, 0, 0, 0, time.UTC)},
		{ID: "3", Status: StatusRejected, AppliedAt: time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)},
		{ID: "4", Status: StatusAccepted, AppliedAt: time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)},
		{ID: "5", Status: StatusViewed, AppliedAt: time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC)},
	}

	d := BuildDashboard(apps, now)

	if d.TotalApplications != 5 {
		t.Fatalf("total = %d", d.TotalApplications)
	}
	if d.ThisMonth != 3 {
		t.Fatalf("thisMonth = %d", d.ThisMonth)
	}
	if len(d.ByStatus) != len(Statuses) {
		t.Fatalf("expected every status, got %v", d.ByStatus)
	}
	if d.ByStatus[StatusApplied] != 2 || d.ByStatus[StatusFinalRound] != 0 {
		t.Fatalf("unexpected byStatus %v", d.ByStatus)
	}
	if len(d.Daily) != 29 {
		t.Fatalf("expected 29 days in leap February, got %d", len(d.Daily))
	}
	if d.Daily[0].Date != "2024-02-01" || d.Daily[0].Count != 2 {
		t.Fatalf("unexpected first day %+v", d.Daily[0])
	}
	if d.Daily[28].Count != 1 || d.Daily[14].Count != 0 {
		t.Fatalf("unexpected daily %+v", d.Daily)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC))
	if d.TotalApplications != 0 || d.ThisMonth != 0 {
		t.Fatalf("unexpected counts %+v", d)
	}
	if len(d.Daily) != 30 || d.Daily[29].Date != "2024-04-30" {
		t.Fatalf("unexpected daily %+v", d.Daily)
	}
}
