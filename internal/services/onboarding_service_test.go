package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/parentsphere/internal/models"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
)

type stubSubmitter struct {
	mu        sync.Mutex
	records   []onboarding.Record
	languages []string
	failures  int
}

func (stub *stubSubmitter) Submit(record onboarding.Record, language string) (models.Submission, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	if stub.failures > 0 {
		stub.failures--
		return models.Submission{}, ErrSubmissionPersistFail
	}
	stub.records = append(stub.records, record)
	stub.languages = append(stub.languages, language)
	return models.Submission{PublicID: fmt.Sprintf("sub-%d", len(stub.records))}, nil
}

func (stub *stubSubmitter) count() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return len(stub.records)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(step time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(step)
	clock.mu.Unlock()
}

func ptr[T any](value T) *T {
	return &value
}

func newTestOnboardingService(submitter OnboardingSubmitter, ttl time.Duration) (*OnboardingService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	service := NewOnboardingService(submitter, nil, ttl)
	service.now = clock.Now
	return service, clock
}

func mustStart(t *testing.T, service *OnboardingService, language string) string {
	t.Helper()

	sessionID, snapshot, err := service.Start(language)
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if snapshot.Step != onboarding.StepIdentity {
		t.Fatalf("expected fresh session at identity step, got %s", snapshot.Step)
	}
	if snapshot.SessionID != sessionID {
		t.Fatalf("expected snapshot session id %q, got %q", sessionID, snapshot.SessionID)
	}
	return sessionID
}

func mustDispatch(t *testing.T, service *OnboardingService, sessionID string, event onboarding.Event) SessionSnapshot {
	t.Helper()

	snapshot, err := service.Dispatch(sessionID, event)
	if err != nil {
		t.Fatalf("Dispatch(%T) unexpected error: %v", event, err)
	}
	return snapshot
}

func fillThroughPreferences(t *testing.T, service *OnboardingService, sessionID string) {
	t.Helper()

	mustDispatch(t, service, sessionID, onboarding.Update{Patch: onboarding.Patch{
		FullName:    ptr("Jane Doe"),
		DateOfBirth: ptr("1990-05-01"),
	}})
	mustDispatch(t, service, sessionID, onboarding.Advance{})
	mustDispatch(t, service, sessionID, onboarding.UpdateBaby{Index: 0, Patch: onboarding.BabyPatch{
		Name:      ptr("Max"),
		Birthdate: ptr("2026-06-01"),
	}})
	mustDispatch(t, service, sessionID, onboarding.Advance{})
	mustDispatch(t, service, sessionID, onboarding.ToggleConcern{Tag: "Sleep"})
}

func TestOnboardingServiceCompletesAndSubmitsOnce(t *testing.T) {
	submitter := &stubSubmitter{}
	service, _ := newTestOnboardingService(submitter, 0)
	sessionID := mustStart(t, service, "es")

	fillThroughPreferences(t, service, sessionID)
	snapshot := mustDispatch(t, service, sessionID, onboarding.Advance{})

	if !snapshot.Completed || snapshot.Step != onboarding.StepDone {
		t.Fatalf("expected completed snapshot, got step %s", snapshot.Step)
	}
	if snapshot.SubmissionID != "sub-1" {
		t.Fatalf("expected submission id sub-1, got %q", snapshot.SubmissionID)
	}
	if submitter.count() != 1 {
		t.Fatalf("expected one submission, got %d", submitter.count())
	}
	if submitter.languages[0] != "es" {
		t.Fatalf("expected submission language es, got %q", submitter.languages[0])
	}
	if submitter.records[0].FullName != "Jane Doe" {
		t.Fatalf("expected submitted full name Jane Doe, got %q", submitter.records[0].FullName)
	}

	mustDispatch(t, service, sessionID, onboarding.Advance{})
	if _, err := service.Dispatch(sessionID, onboarding.AddBaby{}); !errors.Is(err, onboarding.ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
	if submitter.count() != 1 {
		t.Fatalf("expected submission to fire once, got %d", submitter.count())
	}
}

func TestOnboardingServiceReturnsValidationErrorsWithSnapshot(t *testing.T) {
	service, _ := newTestOnboardingService(&stubSubmitter{}, 0)
	sessionID := mustStart(t, service, "en")

	snapshot, err := service.Dispatch(sessionID, onboarding.Advance{})
	var validation *onboarding.ValidationErrors
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if snapshot.Step != onboarding.StepIdentity {
		t.Fatalf("expected to stay on identity step, got %s", snapshot.Step)
	}
	if snapshot.Errors["fullName"] != onboarding.ProblemRequired {
		t.Fatalf("expected fullName error in snapshot, got %v", snapshot.Errors)
	}
}

func TestOnboardingServiceRetriesFailedSubmission(t *testing.T) {
	submitter := &stubSubmitter{failures: 1}
	service, _ := newTestOnboardingService(submitter, 0)
	sessionID := mustStart(t, service, "en")
	fillThroughPreferences(t, service, sessionID)

	snapshot, err := service.Dispatch(sessionID, onboarding.Advance{})
	if !errors.Is(err, ErrSubmissionPersistFail) {
		t.Fatalf("expected ErrSubmissionPersistFail, got %v", err)
	}
	if !snapshot.Completed || snapshot.SubmissionID != "" {
		t.Fatalf("expected completed snapshot without submission id, got %+v", snapshot)
	}

	snapshot = mustDispatch(t, service, sessionID, onboarding.Advance{})
	if snapshot.SubmissionID != "sub-1" {
		t.Fatalf("expected retried submission id sub-1, got %q", snapshot.SubmissionID)
	}
	if submitter.count() != 1 {
		t.Fatalf("expected one stored submission, got %d", submitter.count())
	}
}

func TestOnboardingServiceUnknownSession(t *testing.T) {
	service, _ := newTestOnboardingService(&stubSubmitter{}, 0)

	if _, err := service.Snapshot("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := service.Dispatch("missing", onboarding.Advance{}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := service.SetLanguage("missing", "es"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestOnboardingServiceExpiresIdleSessions(t *testing.T) {
	service, clock := newTestOnboardingService(&stubSubmitter{}, time.Hour)
	idle := mustStart(t, service, "en")
	active := mustStart(t, service, "en")

	clock.Advance(40 * time.Minute)
	if _, err := service.Snapshot(active); err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}

	clock.Advance(30 * time.Minute)
	if _, err := service.Snapshot(idle); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session to expire, got %v", err)
	}
	if _, err := service.Snapshot(active); err != nil {
		t.Fatalf("expected touched session to survive, got %v", err)
	}
}

func TestOnboardingServicePrune(t *testing.T) {
	service, clock := newTestOnboardingService(&stubSubmitter{}, time.Hour)
	mustStart(t, service, "en")
	mustStart(t, service, "en")

	clock.Advance(2 * time.Hour)
	fresh := mustStart(t, service, "en")

	if got := service.ActiveSessions(); got != 1 {
		t.Fatalf("expected Start to prune expired sessions, got %d active", got)
	}

	clock.Advance(2 * time.Hour)
	if removed := service.Prune(); removed != 1 {
		t.Fatalf("expected Prune to remove 1 session, got %d", removed)
	}
	if _, err := service.Snapshot(fresh); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected pruned session to be gone, got %v", err)
	}
}

func TestOnboardingServiceJanitorStopsWithContext(t *testing.T) {
	service, clock := newTestOnboardingService(&stubSubmitter{}, time.Minute)
	mustStart(t, service, "en")
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.StartJanitor(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for service.ActiveSessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected janitor to prune the expired session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOnboardingServiceSessionsAreIndependent(t *testing.T) {
	service, _ := newTestOnboardingService(&stubSubmitter{}, 0)
	first := mustStart(t, service, "en")
	second := mustStart(t, service, "en")

	mustDispatch(t, service, first, onboarding.Update{Patch: onboarding.Patch{FullName: ptr("First")}})

	snapshot, err := service.Snapshot(second)
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if snapshot.Record.FullName != "" {
		t.Fatalf("expected second session untouched, got %q", snapshot.Record.FullName)
	}
}

func TestOnboardingServiceConcurrentDispatch(t *testing.T) {
	service, _ := newTestOnboardingService(&stubSubmitter{}, 0)
	sessionID := mustStart(t, service, "en")

	var wg sync.WaitGroup
	for index := 0; index < 20; index++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Dispatch(sessionID, onboarding.AddBaby{}); err != nil {
				t.Errorf("Dispatch(AddBaby) unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	snapshot, err := service.Snapshot(sessionID)
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if got := len(snapshot.Record.Babies); got != 21 {
		t.Fatalf("expected 21 babies, got %d", got)
	}
}

func TestOnboardingServiceSetLanguage(t *testing.T) {
	submitter := &stubSubmitter{}
	service, _ := newTestOnboardingService(submitter, 0)
	sessionID := mustStart(t, service, "en")

	if err := service.SetLanguage(sessionID, "es"); err != nil {
		t.Fatalf("SetLanguage() unexpected error: %v", err)
	}
	fillThroughPreferences(t, service, sessionID)
	mustDispatch(t, service, sessionID, onboarding.Advance{})

	if submitter.languages[0] != "es" {
		t.Fatalf("expected language es, got %q", submitter.languages[0])
	}
}
