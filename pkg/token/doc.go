// Package token provides compact signed tokens and URL-safe identifier encoding
// for account links such as email activation and password reset.
//
// Token format: base64url(payload).base64url(signature)
//
// The signature is a 16-byte truncated HMAC-SHA256 over the JSON payload
// followed by any binding values. Bindings are never embedded in the token;
// the verifier must supply the same values again. A Generator uses this to
// bind a token to the current state of its Target, so the token stops
// verifying as soon as that state changes (password reset, activation, login).
//
// # Usage
//
//	gen, err := token.NewGenerator(secret, "account.reset", 24*time.Hour)
//	if err != nil {
//	    return err
//	}
//
//	tok, err := gen.Issue(user)
//	link := fmt.Sprintf("%s/reset_password/%s/%s", siteURL, token.EncodeID(user.ID), tok)
//
//	// later
//	id, err := token.DecodeID(uid)
//	user, err := users.GetUser(ctx, id)
//	if !gen.Verify(user, tok) {
//	    // invalid or expired
//	}
//
// Returns ErrInvalidToken for malformed tokens, ErrSignatureInvalid for
// signature mismatches and ErrTokenExpired for tokens past their expiry.
package token
