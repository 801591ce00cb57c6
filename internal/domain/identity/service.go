// internal/domain/identity/service.go
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/auth"
	"github.com/sirupsen/logrus"
)

// Gateway performs the OTP exchange with the commerce API
type Gateway interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (token string, user User, err error)
}

// Service handles login state for browser sessions
type Service struct {
	store       state.Store
	locks       *state.SessionLocks
	gateway     Gateway
	countryCode string
	logger      *logrus.Logger
	now         func() time.Time
}

// NewService creates a new identity service
func NewService(store state.Store, locks *state.SessionLocks, gateway Gateway, countryCode string, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		locks:       locks,
		gateway:     gateway,
		countryCode: countryCode,
		logger:      logger,
		now:         time.Now,
	}
}

// Current returns the session's identity. An expired token reports the
// session as signed out but leaves the stored record alone.
func (s *Service) Current(ctx context.Context, sessionID string) (*Identity, error) {
	id, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if id.Authenticated && auth.IsExpired(id.Token, s.now()) {
		s.logger.WithField("session_id", sessionID).Debug("Access token expired")
		return &Identity{}, nil
	}

	return id, nil
}

// SendOTP validates and normalizes the phone, then asks the commerce API to
// send a code. It returns the normalized phone for the verify step.
func (s *Service) SendOTP(ctx context.Context, rawPhone string) (string, error) {
	phone, err := NormalizePhone(rawPhone, s.countryCode)
	if err != nil {
		return "", err
	}

	if err := s.gateway.SendOTP(ctx, phone); err != nil {
		s.logger.WithFields(logrus.Fields{
			"phone": maskPhone(phone),
			"error": err.Error(),
		}).Warn("Failed to send OTP")
		return "", err
	}

	return phone, nil
}

// VerifyOTP exchanges the code for an access token and signs the session in
func (s *Service) VerifyOTP(ctx context.Context, sessionID, rawPhone, otp string) (*Identity, error) {
	phone, err := NormalizePhone(rawPhone, s.countryCode)
	if err != nil {
		return nil, err
	}
	if err := ValidateOTP(otp); err != nil {
		return nil, err
	}

	token, user, err := s.gateway.VerifyOTP(ctx, phone, otp)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"phone": maskPhone(phone),
			"error": err.Error(),
		}).Warn("OTP verification failed")
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	id := &Identity{}
	id.Login(token, user)

	data, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := s.store.Put(ctx, sessionID, state.KindIdentity, data); err != nil {
		return nil, fmt.Errorf("failed to save identity: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    user.ID,
	}).Info("User logged in")

	return id, nil
}

// Logout discards the persisted identity. The cart is untouched.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID, state.KindIdentity); err != nil {
		return fmt.Errorf("failed to discard identity: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Identity, error) {
	data, found, err := s.store.Get(ctx, sessionID, state.KindIdentity)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}
	if !found {
		return &Identity{}, nil
	}

	id := &Identity{}
	if err := json.Unmarshal(data, id); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Discarding unreadable identity")
		return &Identity{}, nil
	}

	return id, nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "******" + phone[len(phone)-4:]
}
