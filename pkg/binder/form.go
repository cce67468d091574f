package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds the in-memory part of multipart parsing.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded or multipart/form-data bodies
// to fields tagged `form:"name"`. Requests without a body method are skipped.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			return ErrBinderNotApplicable
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)

		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrInvalidForm)

		default:
			return fmt.Errorf("%w: got %s, expected a form", ErrUnsupportedMediaType, mediaType)
		}
	}
}

// Query binds URL query parameters to fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// Path binds router path parameters to fields tagged `path:"name"` using
// extractor, for example chi.URLParam.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}
		return bindFunc(v, "path", func(name string) []string {
			if val := extractor(r, name); val != "" {
				return []string{val}
			}
			return nil
		}, ErrInvalidPath)
	}
}
