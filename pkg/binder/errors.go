package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameters")
	ErrInvalidPath          = errors.New("invalid path parameters")
	ErrInvalidTarget        = errors.New("binding target must be a non-nil pointer to struct")
)
