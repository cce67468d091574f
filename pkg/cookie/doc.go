// Package cookie manages HTTP cookies with a shared set of default attributes
// and tamper-proof values backed by gorilla/securecookie.
//
// Secure values are HMAC-signed and AES-encrypted. Keys are derived from the
// configured secrets; the first secret encodes and every secret decodes, so
// old secrets can be kept during rotation.
//
//	mgr, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//
//	_ = mgr.SetSecure(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := mgr.GetSecure(r, "sid")
//
// Flash values are read once: GetFlash deletes the cookie after decoding it.
package cookie
