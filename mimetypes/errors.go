package mimetypes

import "errors"

var ErrTypeNotFound = errors.New("content type not found")
