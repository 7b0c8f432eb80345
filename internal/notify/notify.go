// Package notify tells applicants about review decisions.
package notify

import (
	"context"
	"errors"

	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
)

// Acceptance describes a response that was just accepted.
type Acceptance struct {
	ResponseID     string
	FormID         string
	FormTitle      bilingual.Text
	UserID         *uint
	ApplicantName  string
	ApplicantEmail string
	SendEmail      bool
}

type Notifier interface {
	RecruitmentAccepted(ctx context.Context, a Acceptance) error
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) RecruitmentAccepted(ctx context.Context, a Acceptance) error {
	var errs []error
	for _, n := range m {
		if err := n.RecruitmentAccepted(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) RecruitmentAccepted(context.Context, Acceptance) error { return nil }
