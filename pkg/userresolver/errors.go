package userresolver

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("userresolver: empty redis connection URL")
	ErrFailedToParseURL   = errors.New("userresolver: failed to parse redis connection URL")
	ErrConnectionFailed   = errors.New("userresolver: failed to connect to redis")
	ErrHealthcheckFailed  = errors.New("userresolver: redis healthcheck failed")
	ErrLookupFailed       = errors.New("userresolver: user lookup failed")
)
