package tui

import "errors"

// ErrMissingForm is returned when neither the rubric nor the grade form is provided.
var ErrMissingForm = errors.New("tui: a rubric or grade form is required")

// ErrNoSession is returned when the app is run without a session to show.
var ErrNoSession = errors.New("tui: no session to open")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
