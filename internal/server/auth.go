package server

import (
	"context"
	"crypto/subtle"
)

// StaticUserValidator checks admin credentials against a fixed pair. Used
// when the service runs without postgres and no user table exists.
type StaticUserValidator struct {
	username string
	password string
}

func NewStaticUserValidator(username, password string) *StaticUserValidator {
	return &StaticUserValidator{username: username, password: password}
}

func (v *StaticUserValidator) ValidateUser(_ context.Context, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(v.password), []byte(password)) == 1
	return userOK && passOK, nil
}
