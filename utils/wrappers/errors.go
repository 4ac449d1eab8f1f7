// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

// Errs collects the first error from a sequence of fallible calls, so that
// registration-style code can run every call and check once at the end.
type Errs struct{ Err error }

func (errs *Errs) Errored() bool { return errs.Err != nil }

// Add records the first non-nil error, if one hasn't been recorded yet.
func (errs *Errs) Add(errors ...error) {
	if errs.Err == nil {
		for _, err := range errors {
			if err != nil {
				errs.Err = err
				break
			}
		}
	}
}
