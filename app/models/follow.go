package models

import (
	"errors"
	"time"
)

// Validate checks if the follow edge meets all validation requirements
func (f *Follow) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}

	if f.UserID == f.AuthorID {
		return errors.New("user cannot follow themselves")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (f *Follow) BeforeCreate() {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
}
