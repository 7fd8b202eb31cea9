package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/parentsphere/internal/models"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
	"github.com/terraincognita07/parentsphere/internal/security"
	"go.uber.org/zap"
)

const DefaultOnboardingSessionTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("onboarding session not found")

type OnboardingSubmitter interface {
	Submit(record onboarding.Record, language string) (models.Submission, error)
}

// SessionSnapshot is the wizard view plus the session bookkeeping a client
// needs to resume or link to the stored profile.
type SessionSnapshot struct {
	onboarding.Snapshot
	SessionID    string `json:"sessionId"`
	SubmissionID string `json:"submissionId,omitempty"`
}

type onboardingSession struct {
	mu           sync.Mutex
	wizard       *onboarding.Wizard
	language     string
	pending      *onboarding.Record
	submissionID string

	// guarded by OnboardingService.mu
	lastSeen time.Time
}

// OnboardingService keeps one wizard per session. Calls for the same session
// are serialised; different sessions proceed independently.
type OnboardingService struct {
	submitter OnboardingSubmitter
	logger    *zap.Logger
	ttl       time.Duration
	now       func() time.Time
	newID     func() (string, error)

	mu       sync.Mutex
	sessions map[string]*onboardingSession
}

func NewOnboardingService(submitter OnboardingSubmitter, logger *zap.Logger, ttl time.Duration) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultOnboardingSessionTTL
	}
	return &OnboardingService{
		submitter: submitter,
		logger:    logger.Named("onboarding"),
		ttl:       ttl,
		now:       time.Now,
		newID:     security.NewSessionID,
		sessions:  make(map[string]*onboardingSession),
	}
}

// Start opens a fresh wizard and returns its session id.
func (service *OnboardingService) Start(language string) (string, SessionSnapshot, error) {
	sessionID, err := service.newID()
	if err != nil {
		return "", SessionSnapshot{}, fmt.Errorf("generate session id: %w", err)
	}

	session := &onboardingSession{language: language}
	session.wizard = onboarding.New(onboarding.WithSubmit(func(record onboarding.Record) {
		session.pending = &record
	}))

	service.mu.Lock()
	service.pruneLocked(service.now())
	session.lastSeen = service.now()
	service.sessions[sessionID] = session
	service.mu.Unlock()

	service.logger.Debug("onboarding session started", zap.String("session_id", sessionID))
	return sessionID, session.snapshot(sessionID), nil
}

func (service *OnboardingService) Snapshot(sessionID string) (SessionSnapshot, error) {
	session, err := service.lookup(sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(sessionID), nil
}

// Dispatch applies one wizard event. The snapshot reflects the state after the
// event even when an error is returned. When the event completes the wizard the
// record is submitted; a failed submission is retried on the next dispatch.
func (service *OnboardingService) Dispatch(sessionID string, event onboarding.Event) (SessionSnapshot, error) {
	session, err := service.lookup(sessionID)
	if err != nil {
		return SessionSnapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	dispatchErr := session.wizard.Dispatch(event)
	if errs := session.wizard.Errors(); errs != nil {
		service.logger.Debug("onboarding step rejected",
			zap.String("session_id", sessionID),
			zap.Stringer("step", errs.Step),
			zap.Strings("fields", errs.SortedKeys(session.wizard.Record())),
		)
	}

	if session.pending != nil {
		submission, err := service.submitter.Submit(*session.pending, session.language)
		if err != nil {
			service.logger.Warn("onboarding submission failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return session.snapshot(sessionID), err
		}
		session.pending = nil
		session.submissionID = submission.PublicID
		service.logger.Info("onboarding completed",
			zap.String("session_id", sessionID),
			zap.String("submission_id", submission.PublicID),
		)
	}

	return session.snapshot(sessionID), dispatchErr
}

// SetLanguage records the language the submission will be stored with.
func (service *OnboardingService) SetLanguage(sessionID string, language string) error {
	session, err := service.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	session.language = language
	session.mu.Unlock()
	return nil
}

// Prune drops sessions idle for longer than the TTL and reports how many went.
func (service *OnboardingService) Prune() int {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.pruneLocked(service.now())
}

func (service *OnboardingService) ActiveSessions() int {
	service.mu.Lock()
	defer service.mu.Unlock()
	return len(service.sessions)
}

// StartJanitor prunes idle sessions on a fixed interval until ctx is done.
func (service *OnboardingService) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := service.Prune(); removed > 0 {
					service.logger.Debug("pruned onboarding sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func (service *OnboardingService) lookup(sessionID string) (*onboardingSession, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, ok := service.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := service.now()
	if service.expired(session, now) {
		delete(service.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	session.lastSeen = now
	return session, nil
}

func (service *OnboardingService) pruneLocked(now time.Time) int {
	removed := 0
	for sessionID, session := range service.sessions {
		if service.expired(session, now) {
			delete(service.sessions, sessionID)
			removed++
		}
	}
	return removed
}

func (service *OnboardingService) expired(session *onboardingSession, now time.Time) bool {
	return now.Sub(session.lastSeen) > service.ttl
}

func (session *onboardingSession) snapshot(sessionID string) SessionSnapshot {
	return SessionSnapshot{
		Snapshot:     session.wizard.Snapshot(),
		SessionID:    sessionID,
		SubmissionID: session.submissionID,
	}
}
