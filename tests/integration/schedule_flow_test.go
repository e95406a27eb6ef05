package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRecurringScheduleFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "frank@example.com", "password123")
	liabilityID := app.createLiability(t, token, "Car Loan", 500000)

	// Create a schedule anchored well in the past so every month projects.
	rec := app.request("POST", "/api/v1/schedules",
		fmt.Sprintf(`{"liability_id":%q,"amount":15000,"day_of_month":%d,"start_date":"2020-01-01","description":"Car EMI"}`,
			liabilityID, time.Now().UTC().Day()), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create schedule failed: %d %s", rec.Code, rec.Body.String())
	}
	schedule := parseData(t, rec)
	scheduleID := schedule["id"].(string)
	if schedule["is_active"] != true {
		t.Error("expected new schedule to be active")
	}

	// A schedule needs an existing target
	rec = app.request("POST", "/api/v1/schedules",
		`{"liability_id":"7f4d2c1a-93b5-4e8f-a1c2-0d9e8b7a6f5e","amount":100,"day_of_month":1,"start_date":"2020-01-01"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown target, got %d: %s", rec.Code, rec.Body.String())
	}

	// Project the next three months. Today's occurrence is due today, so the
	// window holds exactly one occurrence per month.
	rec = app.request("GET", "/api/v1/schedules/upcoming?months=3", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upcoming failed: %d %s", rec.Code, rec.Body.String())
	}
	payments := parseDataList(t, rec)
	if len(payments) == 0 {
		t.Fatal("expected projected payments")
	}
	first := payments[0].(map[string]interface{})
	if first["status"] != "due_today" {
		t.Errorf("expected first occurrence due_today, got %v", first["status"])
	}
	for i := 1; i < len(payments); i++ {
		prev := payments[i-1].(map[string]interface{})["date"].(string)
		cur := payments[i].(map[string]interface{})["date"].(string)
		if cur < prev {
			t.Errorf("expected payments sorted by date, got %s before %s", prev, cur)
		}
		if payments[i].(map[string]interface{})["status"] != "upcoming" {
			t.Errorf("expected later occurrences upcoming, got %v", payments[i].(map[string]interface{})["status"])
		}
	}

	// Record an exact payment for today's occurrence and it flips to paid.
	firstDate := first["date"].(string)[:10]
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"liability_id":%q,"type":"emi_payment","amount":15000,"date":%q}`, liabilityID, firstDate), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record payment failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/schedules/upcoming?months=3", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upcoming failed: %d %s", rec.Code, rec.Body.String())
	}
	payments = parseDataList(t, rec)
	if payments[0].(map[string]interface{})["status"] != "paid" {
		t.Errorf("expected first occurrence paid, got %v", payments[0].(map[string]interface{})["status"])
	}

	// The payment also moved the balance.
	rec = app.request("GET", "/api/v1/liabilities/"+liabilityID, "", token)
	if got := int64(parseData(t, rec)["balance"].(float64)); got != 485000 {
		t.Errorf("expected balance 485000 after payment, got %d", got)
	}

	// Pausing removes the schedule from unfiltered listings and projections.
	rec = app.request("PUT", "/api/v1/schedules/"+scheduleID, `{"is_active":false}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("pause failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/schedules", "", token)
	if active := parseDataList(t, rec); len(active) != 0 {
		t.Errorf("expected no active schedules, got %d", len(active))
	}

	rec = app.request("GET", "/api/v1/schedules/upcoming?months=3", "", token)
	if upcoming := parseDataList(t, rec); len(upcoming) != 0 {
		t.Errorf("expected no projections for paused schedule, got %d", len(upcoming))
	}

	// Even a target-filtered projection, which lists the paused schedule,
	// produces no occurrences for it.
	rec = app.request("GET", "/api/v1/schedules/upcoming?months=3&liability_id="+liabilityID, "", token)
	if upcoming := parseDataList(t, rec); len(upcoming) != 0 {
		t.Errorf("expected no filtered projections for paused schedule, got %d", len(upcoming))
	}

	// Filtering by the target still shows the paused schedule.
	rec = app.request("GET", "/api/v1/schedules?liability_id="+liabilityID, "", token)
	all := parseDataList(t, rec)
	if len(all) != 1 {
		t.Fatalf("expected 1 schedule for target, got %d", len(all))
	}
	if all[0].(map[string]interface{})["is_active"] != false {
		t.Error("expected paused schedule in target listing")
	}
}
