package sleekshop

import (
	"context"
	"encoding/json"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// UserService covers registration, login and user profiles.
type UserService struct {
	c *Client
}

// Register registers a user. args usually carries username, passwd1,
// passwd2, email and class.
func (s *UserService) Register(
	ctx context.Context,
	args map[string]any,
	lang string,
) (*domain.Envelope[domain.Registration], error) {
	p := newParams("register_user").
		JSON("args", args).
		String("language", s.c.lang(lang))
	return callDecoded(ctx, s.c, p, toRegistration)
}

// Verify confirms a registration.
func (s *UserService) Verify(
	ctx context.Context,
	userID int,
	sessionID string,
) (*domain.Envelope[domain.StatusResult], error) {
	p := newParams("verify_user").
		Int("id_user", userID).
		String("session_id", sessionID)
	return callDecoded(ctx, s.c, p, toStatus)
}

// Login binds a user to a session.
func (s *UserService) Login(
	ctx context.Context,
	session, username, password string,
) (*domain.Envelope[domain.LoginResult], error) {
	p := newParams("login_user").
		String("session", session).
		String("username", username).
		String("password", password)
	return callDecoded(ctx, s.c, p, toLoginResult)
}

// Logout unbinds the user from a session.
func (s *UserService) Logout(
	ctx context.Context,
	session string,
) (*domain.Envelope[domain.StatusResult], error) {
	p := newParams("logout_user").String("session", session)
	return callDecoded(ctx, s.c, p, toStatus)
}

// SetPassword changes the password of the logged in user.
func (s *UserService) SetPassword(
	ctx context.Context,
	session, oldPassword, newPassword1, newPassword2 string,
) (*domain.Envelope[domain.StatusResult], error) {
	p := newParams("set_user_password").
		String("session", session).
		String("old_passwd", oldPassword).
		String("new_passwd1", newPassword1).
		String("new_passwd2", newPassword2)
	return callDecoded(ctx, s.c, p, toStatus)
}

// ResetPassword starts a password reset.
func (s *UserService) ResetPassword(
	ctx context.Context,
	args map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("reset_user_password").JSON("args", args)
	return s.c.passthrough(ctx, p)
}

// Orders lists the orders of the logged in user.
func (s *UserService) Orders(
	ctx context.Context,
	session string,
) (*domain.Envelope[[]domain.UserOrder], error) {
	p := newParams("get_user_orders").String("session", session)
	return callDecoded(ctx, s.c, p, toUserOrders)
}

// Data returns the profile of the logged in user.
func (s *UserService) Data(
	ctx context.Context,
	session string,
) (*domain.Envelope[domain.User], error) {
	p := newParams("get_user_data").String("session", session)
	return callDecoded(ctx, s.c, p, toUser)
}

// ByID returns the profile of any user.
func (s *UserService) ByID(
	ctx context.Context,
	userID int,
) (*domain.Envelope[domain.User], error) {
	p := newParams("get_user_by_id").Privileged().Int("id_user", userID)
	return callDecoded(ctx, s.c, p, toUser)
}

// SetData updates profile attributes of the logged in user.
func (s *UserService) SetData(
	ctx context.Context,
	session string,
	attributes map[string]any,
) (*domain.Envelope[domain.StatusResult], error) {
	p := newParams("set_user_data").
		String("session", session).
		JSON("attributes", attributes)
	return callDecoded(ctx, s.c, p, toStatus)
}

// Update updates profile attributes of any user.
func (s *UserService) Update(
	ctx context.Context,
	userID int,
	attributes map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("update_user_data").Privileged().
		Int("id_user", userID).
		JSON("attributes", attributes)
	return s.c.passthrough(ctx, p)
}

// InstantLogin exchanges a one-time login token for a session.
func (s *UserService) InstantLogin(
	ctx context.Context,
	token, applicationToken string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("instant_login").
		String("token", token).
		String("application_token", applicationToken)
	return s.c.passthrough(ctx, p)
}
