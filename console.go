// Package console is the admin client for the ERP platform. It wires the
// configured transport, the persisted session, the typed API services,
// the permission-filtered navigation and the background pollers into one
// entry point a front end can drive.
package console

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/console/api"
	"github.com/erp/console/config"
	"github.com/erp/console/domain/apps"
	"github.com/erp/console/domain/identity"
	"github.com/erp/console/guard"
	"github.com/erp/console/logger"
	"github.com/erp/console/nav"
	"github.com/erp/console/poll"
	"github.com/erp/console/session"
	"github.com/erp/console/store"
	"github.com/erp/console/transport"
)

// Console aggregates everything a front end needs to drive the platform
type Console struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	session *session.Session

	// API is the typed service set over the authenticated transport
	API *api.Services
	// Unread polls the notification badge counter
	Unread *poll.UnreadPoller
	// Broadcast polls the platform announcement banner
	Broadcast *poll.BroadcastPoller
}

// Option configures a Console at construction time
type Option func(*options)

type options struct {
	log            *zap.Logger
	notifier       transport.Notifier
	onForcedLogout func()
	transportOpts  []transport.Option
}

// WithLogger overrides the logger built from configuration
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithNotifier installs the global API-error notifier, the place where a
// front end hangs its toast handler
func WithNotifier(n transport.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithForcedLogoutHook runs after an expired or revoked token clears the
// session, so the front end can route to the login screen
func WithForcedLogoutHook(fn func()) Option {
	return func(o *options) { o.onForcedLogout = fn }
}

// WithTransportOptions passes extra options to the transport client
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) { o.transportOpts = append(o.transportOpts, opts...) }
}

// New builds a Console from configuration. The persisted session is
// restored immediately, so IsAuthenticated reflects the last login as
// soon as New returns.
func New(cfg *config.Config, opts ...Option) (*Console, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		var err error
		log, err = logger.New(&logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
		})
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	st, err := store.Open(cfg.State.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	sess := session.New(st, log)
	if err := sess.Restore(); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	c := &Console{
		cfg:     cfg,
		log:     log.Named("console"),
		store:   st,
		session: sess,
	}

	tOpts := []transport.Option{
		transport.WithUnauthorizedHook(func() {
			if err := sess.Clear(); err != nil {
				c.log.Warn("clearing session after 401 failed", zap.Error(err))
			}
			if o.onForcedLogout != nil {
				o.onForcedLogout()
			}
		}),
	}
	if o.notifier != nil {
		tOpts = append(tOpts, transport.WithNotifier(o.notifier))
	}
	tOpts = append(tOpts, o.transportOpts...)

	t := transport.New(cfg.API, sess.Token, log, tOpts...)
	c.API = api.New(t, log)

	c.Unread = poll.NewUnreadPoller(c.API.Notification, log,
		cfg.Poll.UnreadInterval, uint64(cfg.Poll.UnreadMaxRetries))
	c.Broadcast = poll.NewBroadcastPoller(c.API.Admin, log, cfg.Poll.BroadcastInterval)

	return c, nil
}

// Session exposes the authentication state holder
func (c *Console) Session() *session.Session { return c.session }

// Login authenticates and persists the resulting session
func (c *Console) Login(ctx context.Context, username, password string) (*identity.User, error) {
	result, err := c.API.Auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(result.AccessToken, result.User, result.Company); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	c.log.Info("logged in",
		zap.String("user_id", result.User.ID.String()),
		zap.Bool("superuser", result.User.IsSuperuser))
	return result.User, nil
}

// Logout invalidates the token server-side and clears local state. The
// local session is cleared even when the server call fails.
func (c *Console) Logout(ctx context.Context) error {
	if err := c.API.Auth.Logout(ctx); err != nil {
		c.log.Debug("server logout failed", zap.Error(err))
	}
	return c.session.Clear()
}

// Impersonate swaps the session to a tenant user via an operator grant
func (c *Console) Impersonate(ctx context.Context, grant *api.ImpersonationGrant) error {
	return c.session.Impersonate(grant.AccessToken, grant.User, grant.Company)
}

// EndImpersonation restores the operator's own session
func (c *Console) EndImpersonation() error {
	return c.session.EndImpersonation()
}

// Menu returns the navigation tree filtered for the current user. Pass
// the installed apps to graft their entries under the apps placeholder;
// nil leaves the placeholder as fetched.
func (c *Console) Menu(installed []apps.InstalledApp) []nav.Node {
	user := c.session.CurrentUser()
	tree := nav.Filter(nav.DefaultMenu(), user != nil && user.IsSuperuser, nav.UserPredicate(user))
	if installed != nil {
		tree = nav.AppendInstalledApps(tree, installed)
	}
	return tree
}

// GuardRoute evaluates the authentication guard for a protected route
func (c *Console) GuardRoute() guard.Decision { return guard.Auth(c.session) }

// GuardLogin evaluates the guest guard for the login route
func (c *Console) GuardLogin() guard.Decision { return guard.Login(c.session) }

// GuardAdmin evaluates the superuser guard for operator routes
func (c *Console) GuardAdmin() guard.Decision { return guard.Superuser(c.session) }

// Close releases the state store
func (c *Console) Close() error {
	return c.store.Close()
}
