package service

import (
	"zurnaWorkshop/internal/models"
)

// NoticeError is a failure that already knows how it should be shown.
type NoticeError struct {
	Notice models.Notice
	Err    error
}

func (e *NoticeError) Error() string {
	return e.Err.Error()
}

func (e *NoticeError) Unwrap() error {
	return e.Err
}

func success(title, description string) *models.Notice {
	return &models.Notice{Title: title, Description: description}
}

func failure(title, description string, err error) *NoticeError {
	return &NoticeError{
		Notice: models.Notice{Title: title, Description: description, Destructive: true},
		Err:    err,
	}
}
