package io

import (
	"errors"

	"github.com/ezrec/ucomp/translate"
)

var f = translate.From

var (
	// Console errors
	ErrChannelFull  = errors.New(f("channel full"))
	ErrChannelEmpty = errors.New(f("channel empty"))
	ErrNoInput      = errors.New(f("no input attached"))
	ErrNoOutput     = errors.New(f("no output attached"))
)

// ErrParseNumber is console input that is not a base-10 integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
