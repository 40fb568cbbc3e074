// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import "errors"

// ErrNoOverlap indicates a join produced an empty topology where a non-empty
// one was required by the caller.
var ErrNoOverlap = errors.New("no overlap between mappings")

// ErrMoreThanOneInversion indicates invert produced more than one branch
// where the caller expected exactly one (use Inverted for the multi-branch
// result instead).
var ErrMoreThanOneInversion = errors.New("more than one inversion is not implemented")
