package app

import (
	"context"
	"errors"
	"fmt"

	"ledgerpro/internal/core"
	"ledgerpro/internal/persistence"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned when a password does not match the stored
// hash, or when a new password is too short.
var ErrInvalidPassword = errors.New("invalid password")

const minPasswordLength = 4

func (s *appService) ExportData(_ context.Context) ([]byte, error) {
	return persistence.Encode(s.read().Snapshot())
}

func (s *appService) ImportData(ctx context.Context, data []byte) error {
	snap, err := persistence.Decode(data)
	if err != nil {
		return err
	}
	book, err := core.BookFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("%w: %v", persistence.ErrInvalidSnapshot, err)
	}
	err = s.write(ctx, "import data", func() error {
		s.ledger.Restore(book)
		return nil
	})
	if err == nil {
		s.log.Info().Int("invoices", len(snap.Invoices)).Int("items", len(snap.Inventory)).Msg("data imported")
	}
	return err
}

func (s *appService) RestoreAutoBackup(ctx context.Context) error {
	book, err := s.store.LoadAuto(ctx)
	if err != nil {
		return fmt.Errorf("restore auto backup: %w", err)
	}
	return s.write(ctx, "restore auto backup", func() error {
		s.ledger.Restore(book)
		return nil
	})
}

func (s *appService) ClearData(ctx context.Context) error {
	return s.write(ctx, "clear data", func() error {
		s.ledger.Restore(core.NewBook())
		return nil
	})
}

// ── Password gate ────────────────────────────────────────────────────────────

func (s *appService) SetPassword(ctx context.Context, req SetPasswordRequest) error {
	return s.write(ctx, "set password", func() error {
		st := s.ledger.Book().Settings()
		if st.IsPasswordEnabled && st.PasswordHash != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(req.CurrentPassword)); err != nil {
				return fmt.Errorf("current password: %w", ErrInvalidPassword)
			}
		}

		if !req.Enabled {
			st.IsPasswordEnabled = false
			st.PasswordHash = ""
		} else {
			if len(req.Password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, ErrInvalidPassword)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			st.IsPasswordEnabled = true
			st.PasswordHash = string(hash)
		}
		_, err := s.ledger.UpdateSettings(st)
		return err
	})
}

func (s *appService) VerifyPassword(_ context.Context, password string) (bool, error) {
	st := s.read().Settings()
	if !st.IsPasswordEnabled || st.PasswordHash == "" {
		return true, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return false, ErrInvalidPassword
	}
	return true, nil
}
