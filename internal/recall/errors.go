package recall

import "errors"

var ErrEmptyUserID = errors.New("user id is required")
