package applications

import "time"

// DayCount is the number of applications sent on one day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Dashboard summarizes a user's applications.
type Dashboard struct {
	TotalApplications int            `json:"totalApplications"`
	ThisMonth         int            `json:"thisMonth"`
	ByStatus          map[Status]int `json:"byStatus"`
	Daily             []DayCount     `json:"daily"`
}

// BuildDashboard counts applications overall, by status, and per day of the
// month containing now (UTC).
func BuildDashboard(apps []Application, now time.Time) Dashboard {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := monthStart.AddDate(0, 1, -1).Day()

	d := Dashboard{
		TotalApplications: len(apps),
		ByStatus:          make(map[Status]int, len(Statuses)),
		Daily:             make([]DayCount, days),
	}
	for _, s := range Statuses {
		d.ByStatus[s] = 0
	}
	for i := range d.Daily {
		d.Daily[i].Date = monthStart.AddDate(0, 0, i).Format("2006-01-02")
	}

	for _, app := range apps {
		d.ByStatus[app.Status]++
		at := app.AppliedAt.UTC()
		if at.Year() == now.Year() && at.Month() == now.Month() {
			d.ThisMonth++
			d.Daily[at.Day()-1].Count++
		}
	}
	return d
}
