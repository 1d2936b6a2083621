// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "github.com/coconutbird/clrmeta/internal/log"

// Options configures Parse, mirroring the teacher's file.go Options
// shape (boolean toggles plus an injectable Logger).
type Options struct {
	// StrictValidation runs ValidateStrict immediately after a
	// successful parse, returning the first validation failure as the
	// parse error.
	StrictValidation bool
	// Logger receives diagnostic messages during Parse. A nil Logger
	// discards all output.
	Logger log.Logger
}

func (o Options) logger() *log.Helper {
	return log.NewHelper(o.Logger)
}
