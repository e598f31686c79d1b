package project

import "errors"

var ErrProjectNotFound = errors.New("project not found")
