// Package account implements the account lifecycle: registration with
// emailed activation, login and logout, password change, and password
// recovery through emailed reset links.
//
// Service holds the transport independent flows. Router mounts them on a chi
// router as HTML pages that also answer Datastar requests.
//
// Activation and reset links carry a token bound to the user's current state
// (see token.Generator). Activating the account, logging in, or changing the
// password changes that state, so every link issued before stops working
// without any server-side bookkeeping.
package account
