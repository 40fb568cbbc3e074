// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package treecode

import "errors"

// ErrNotAPrefix indicates NextStepTowards was called on a receiver that is
// not a proper prefix of the target treecode.
var ErrNotAPrefix = errors.New("treecode: not a proper prefix of target")

// ErrRootExists indicates InsertRoot was called on a tree that already has one.
var ErrRootExists = errors.New("treecode: root already inserted")

// ErrNoSuchNode indicates an operation referenced a node index outside the tree.
var ErrNoSuchNode = errors.New("treecode: no such node index")

// ErrDuplicateChild indicates InsertChild was asked to populate a child slot
// (left or right) that is already occupied.
var ErrDuplicateChild = errors.New("treecode: child slot already populated")

// ErrDuplicateCode indicates an insert produced a treecode that already
// identifies another node. Codes are derived from unique tree paths, so
// hitting this is a programming error in the caller.
var ErrDuplicateCode = errors.New("treecode: duplicate code")

// ErrLocked indicates an insert was attempted after the tree was frozen via Lock.
var ErrLocked = errors.New("treecode: tree is locked")
