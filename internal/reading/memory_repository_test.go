package reading

import (
	"context"
	"testing"
	"time"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func seedReadings(t *testing.T, repo *MemoryRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		ts := testDay.Add(time.Duration(i) * time.Minute)
		if err := repo.SaveReading(context.Background(), testReading(ts, 60+i)); err != nil {
			t.Fatalf("SaveReading failed: %v", err)
		}
	}
}

func TestMemoryRepositoryLatestReading(t *testing.T) {
	repo := NewMemoryRepository()

	latest, err := repo.LatestReading(context.Background())
	if err != nil {
		t.Fatalf("LatestReading on empty repo failed: %v", err)
	}
	if latest != nil {
		t.Errorf("Expected nil from empty repo, got %+v", latest)
	}

	seedReadings(t, repo, 5)

	latest, err = repo.LatestReading(context.Background())
	if err != nil {
		t.Fatalf("LatestReading failed: %v", err)
	}
	if latest == nil || latest.HeartRate != 64 {
		t.Errorf("Expected last saved reading (HR 64), got %+v", latest)
	}
}

func TestMemoryRepositoryRecentReadingsNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	seedReadings(t, repo, 10)

	readings, err := repo.RecentReadings(context.Background(), 3)
	if err != nil {
		t.Fatalf("RecentReadings failed: %v", err)
	}

	if len(readings) != 3 {
		t.Fatalf("Expected 3 readings, got %d", len(readings))
	}
	if readings[0].HeartRate != 69 || readings[2].HeartRate != 67 {
		t.Errorf("Expected newest-first order 69..67, got %d..%d", readings[0].HeartRate, readings[2].HeartRate)
	}
}

func TestMemoryRepositoryListReadingsRange(t *testing.T) {
	repo := NewMemoryRepository()
	seedReadings(t, repo, 10)

	from := testDay.Add(2 * time.Minute)
	to := testDay.Add(6 * time.Minute)

	readings, err := repo.ListReadings(context.Background(), from, to, 100)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}

	// Границы включаются: минуты 2..6
	if len(readings) != 5 {
		t.Fatalf("Expected 5 readings in range, got %d", len(readings))
	}
	if readings[0].HeartRate != 62 || readings[4].HeartRate != 66 {
		t.Errorf("Expected chronological order 62..66, got %d..%d", readings[0].HeartRate, readings[4].HeartRate)
	}
}

func TestMemoryRepositoryListReadingsHonorsLimit(t *testing.T) {
	repo := NewMemoryRepository()
	seedReadings(t, repo, 10)

	readings, err := repo.ListReadings(context.Background(), testDay, testDay.Add(time.Hour), 4)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 4 {
		t.Errorf("Expected limit of 4 readings, got %d", len(readings))
	}
}

func TestMemoryRepositoryDailySummaries(t *testing.T) {
	repo := NewMemoryRepository()

	count, err := repo.CountDailySummaries(context.Background())
	if err != nil {
		t.Fatalf("CountDailySummaries failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty summary table, got %d", count)
	}

	for i := 0; i < 5; i++ {
		summary := DailySummary{
			Date:         testDay.AddDate(0, 0, -i),
			RestingHR:    60 + i,
			AvgHRV:       55,
			AvgSpO2:      97.8,
			SleepHours:   7.5,
			TrainingLoad: 30,
		}
		if err := repo.SaveDailySummary(context.Background(), summary); err != nil {
			t.Fatalf("SaveDailySummary failed: %v", err)
		}
	}

	// Повторная запись того же дня перезаписывает строку
	if err := repo.SaveDailySummary(context.Background(), DailySummary{Date: testDay, RestingHR: 99}); err != nil {
		t.Fatalf("SaveDailySummary upsert failed: %v", err)
	}

	count, err = repo.CountDailySummaries(context.Background())
	if err != nil {
		t.Fatalf("CountDailySummaries failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 summaries after upsert, got %d", count)
	}

	summaries, err := repo.ListDailySummaries(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListDailySummaries failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 summaries, got %d", len(summaries))
	}
	if !summaries[0].Date.Equal(testDay) {
		t.Errorf("Expected newest day first, got %v", summaries[0].Date)
	}
	if summaries[0].RestingHR != 99 {
		t.Errorf("Expected upserted resting HR 99, got %d", summaries[0].RestingHR)
	}
	if summaries[1].Date.After(summaries[0].Date) {
		t.Errorf("Expected descending date order, got %v before %v", summaries[0].Date, summaries[1].Date)
	}
}
