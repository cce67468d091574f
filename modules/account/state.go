package account

import (
	"context"

	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/statemachine"
)

type State string

const (
	StateAnonymous          State = "anonymous"
	StateRegisteredInactive State = "registered_inactive"
	StateActiveLoggedOut    State = "active_logged_out"
	StateActiveLoggedIn     State = "active_logged_in"
)

type Event string

const (
	EventRegister       Event = "register"
	EventActivate       Event = "activate"
	EventLogin          Event = "login"
	EventLogout         Event = "logout"
	EventChangePassword Event = "change_password"
	EventForgotPassword Event = "forgot_password"
	EventResetPassword  Event = "reset_password"
)

// Lifecycle is the table of legal account transitions. Activation is only
// possible once and login requires an active account. Any existing account
// may reset its password; a reset does not activate it.
var Lifecycle = statemachine.NewBuilder[State, Event]().
	From(StateAnonymous).When(EventRegister).To(StateRegisteredInactive).Add().
	From(StateRegisteredInactive).When(EventActivate).To(StateActiveLoggedOut).Add().
	From(StateActiveLoggedOut).When(EventLogin).To(StateActiveLoggedIn).Add().
	From(StateActiveLoggedIn).When(EventLogin).To(StateActiveLoggedIn).Add().
	From(StateActiveLoggedIn).When(EventLogout).To(StateActiveLoggedOut).Add().
	From(StateActiveLoggedIn).When(EventChangePassword).To(StateActiveLoggedIn).Add().
	From(StateRegisteredInactive).When(EventForgotPassword).To(StateRegisteredInactive).Add().
	From(StateRegisteredInactive).When(EventResetPassword).To(StateRegisteredInactive).Add().
	From(StateActiveLoggedOut).When(EventForgotPassword).To(StateActiveLoggedOut).Add().
	From(StateActiveLoggedOut).When(EventResetPassword).To(StateActiveLoggedOut).Add().
	From(StateActiveLoggedIn).When(EventResetPassword).To(StateActiveLoggedIn).Add().
	Build()

// StateOf derives the lifecycle state of user. A nil user is anonymous.
func StateOf(user *auth.User, loggedIn bool) State {
	switch {
	case user == nil:
		return StateAnonymous
	case !user.IsActive:
		return StateRegisteredInactive
	case loggedIn:
		return StateActiveLoggedIn
	default:
		return StateActiveLoggedOut
	}
}

// allowed reports whether event may fire for user.
func allowed(ctx context.Context, user *auth.User, loggedIn bool, event Event) bool {
	return Lifecycle.Can(ctx, StateOf(user, loggedIn), event, user)
}
