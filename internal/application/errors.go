package application

import (
	"errors"

	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"gorm.io/gorm"
)

var (
	ErrFormNotFound         = errors.New("recruitment form not found")
	ErrResponseNotFound     = errors.New("recruitment response not found")
	ErrProjectNotFound      = errors.New("project item not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFormInactive         = errors.New("form is not active")
	ErrFormNotOpen          = errors.New("form is not open yet")
	ErrFormClosed           = errors.New("form has closed")
	ErrFormFull             = errors.New("form full")
	ErrDateOverlap          = errors.New("date range overlaps another active form for this project")
)

// notFound maps a missing row to the NotFound kind and passes any other
// store error through untouched.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.Wrap(apierrors.KindNotFound, sentinel)
	}
	return err
}
