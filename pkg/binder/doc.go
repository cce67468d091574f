// Package binder fills request structs from HTTP input using struct tags.
//
// Each binder reads one source and one tag:
//
//	type ResetRequest struct {
//		UID   string `path:"uid"`
//		Token string `path:"token"`
//		Next  string `query:"next"`
//		New1  string `form:"new_password1"`
//	}
//
// Binders return ErrBinderNotApplicable when the request cannot carry their
// source, for example Form on a GET request. handler.Wrap skips such binders
// so one request type can serve both the GET and POST of a form page.
//
// Supported field types are string, the integer and float kinds, bool, pointers
// to those and slices of them. Values are assigned verbatim; trimming and
// normalization are left to the caller.
package binder
