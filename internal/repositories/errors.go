package repositories

import "errors"

// ErrNotFound signals an expected lookup miss. Handlers translate it into a
// 404; it is never wrapped around unexpected failures.
var ErrNotFound = errors.New("not found")

// ErrDuplicate signals that a uniqueness constraint (username, email) would
// be violated. The check and the insert happen under one lock, so two
// concurrent creates for the same key cannot both succeed.
var ErrDuplicate = errors.New("duplicate entry")
