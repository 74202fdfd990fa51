package musically

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/awemekit/musically/httpclient"
)

// Remote routes, fixed by the app protocol.
const (
	routeLogin         = "passport/user/login/"
	routeUser          = "aweme/v1/user/"
	routePostList      = "aweme/v1/aweme/post/"
	routeFollowerList  = "aweme/v1/user/follower/list/"
	routeFollowingList = "aweme/v1/user/following/list/"
	routeFollow        = "aweme/v1/commit/follow/user/"
	routeDigg          = "aweme/v1/commit/item/digg/"
)

// Client is a typed musical.ly API client. Facade methods are safe for
// concurrent use: the signing interceptor is reentrant and the only shared
// mutable state is the cookie jar, which is internally synchronized.
type Client struct {
	cfg    Config
	device StaticRequestParams
	base   Params
	http   *httpclient.Client

	// now is the clock the signing interceptor stamps from. Tests replace it.
	now func() time.Time
}

// New creates a Client for the given device identity and configuration.
// It fails with ErrMissingSignFunc when no SignURL function is configured;
// there is no way to dispatch an unsigned request.
func New(device StaticRequestParams, cfg Config) (*Client, error) {
	if cfg.SignURL == nil {
		return nil, ErrMissingSignFunc
	}
	cfg = cfg.withDefaults()

	jar := cfg.CookieJar
	if jar == nil {
		// cookiejar.New only fails on bad options; none are passed.
		jar, _ = cookiejar.New(nil)
	}

	c := &Client{
		cfg:    cfg,
		device: device,
		base:   device.baseParams(),
		now:    time.Now,
	}

	opts := []httpclient.Option{
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithServiceName("musically"),
		httpclient.WithCookieJar(jar),
		httpclient.WithDefaultHeader("Connection", "keep-alive"),
		// Accept-Encoding: gzip is supplied by the transport, which also
		// transparently decompresses response bodies.
		httpclient.WithDefaultHeader("User-Agent", cfg.userAgent(device)),
		httpclient.WithRequestInterceptor(c.signRequest),
	}
	if cfg.Transport != nil {
		opts = append(opts, httpclient.WithTransport(cfg.Transport))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	if cfg.Debug {
		opts = append(opts, httpclient.WithDebug())
	}
	c.http = httpclient.New(opts...)

	return c, nil
}

// Config returns a copy of the client's configuration. The client's own
// copy is fixed at construction and read-only from then on.
func (c *Client) Config() Config {
	return c.cfg
}

// Device returns a copy of the static device identity attached to every
// request.
func (c *Client) Device() StaticRequestParams {
	return c.device
}

// LoginParams are the credential fields of the generic login operation.
// Credential values are sent exactly as given; LoginWithEmail applies the
// app's wire obfuscation before delegating here.
type LoginParams struct {
	MixMode  int
	Username string
	Email    string
	Mobile   string
	Account  string
	Password string
	Captcha  string
}

// Login issues the generic login operation with the given credential
// fields.
func (c *Client) Login(ctx context.Context, lp LoginParams) (*LoginResponse, error) {
	p := c.requestParams()
	p.Set("mix_mode", strconv.Itoa(lp.MixMode))
	p.Set("username", lp.Username)
	p.Set("email", lp.Email)
	p.Set("mobile", lp.Mobile)
	p.Set("account", lp.Account)
	p.Set("password", lp.Password)
	p.Set("captcha", lp.Captcha)

	var out LoginResponse
	if err := c.do(ctx, "Login", http.MethodPost, routeLogin, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginWithEmail obfuscates the email and password per the app's wire
// encoding and delegates to Login. Plaintext credentials never reach the
// login operation.
func (c *Client) LoginWithEmail(ctx context.Context, email, password string) (*LoginResponse, error) {
	return c.Login(ctx, LoginParams{
		MixMode:  1,
		Email:    Obfuscate(email),
		Password: Obfuscate(password),
	})
}

// GetUser fetches a user profile by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	p := c.requestParams()
	p.Set("user_id", userID)

	var out UserResponse
	if err := c.do(ctx, "GetUser", http.MethodGet, routeUser, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOptions are the pagination fields shared by the listing operations.
// Zero fields fall back to the listing defaults (cursor=0, count=20).
type ListOptions struct {
	UserID string
	Cursor int64
	Count  int
}

func (o ListOptions) params(base Params) Params {
	p := base
	p.Set("user_id", o.UserID)
	if o.Cursor > 0 {
		p.Set("cursor", strconv.FormatInt(o.Cursor, 10))
	}
	if o.Count > 0 {
		p.Set("count", strconv.Itoa(o.Count))
	}
	return withListingDefaults(p)
}

// ListPosts lists a user's published posts.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (*PostListResponse, error) {
	var out PostListResponse
	if err := c.do(ctx, "ListPosts", http.MethodGet, routePostList, opts.params(c.requestParams()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFollowers lists the users following the given user.
func (c *Client) ListFollowers(ctx context.Context, opts ListOptions) (*FollowerListResponse, error) {
	var out FollowerListResponse
	if err := c.do(ctx, "ListFollowers", http.MethodGet, routeFollowerList, opts.params(c.requestParams()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFollowing lists the users the given user follows.
func (c *Client) ListFollowing(ctx context.Context, opts ListOptions) (*FollowingListResponse, error) {
	var out FollowingListResponse
	if err := c.do(ctx, "ListFollowing", http.MethodGet, routeFollowingList, opts.params(c.requestParams()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Follow follows a user.
func (c *Client) Follow(ctx context.Context, userID string) (*FollowResponse, error) {
	return c.commitFollow(ctx, userID, 1)
}

// Unfollow unfollows a user. Same route as Follow, type=0.
func (c *Client) Unfollow(ctx context.Context, userID string) (*FollowResponse, error) {
	return c.commitFollow(ctx, userID, 0)
}

func (c *Client) commitFollow(ctx context.Context, userID string, typ int) (*FollowResponse, error) {
	p := c.requestParams()
	p.Set("user_id", userID)
	p.Set("type", strconv.Itoa(typ))

	var out FollowResponse
	if err := c.do(ctx, "Follow", http.MethodGet, routeFollow, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikePost likes a post.
func (c *Client) LikePost(ctx context.Context, awemeID string) (*DiggResponse, error) {
	return c.commitDigg(ctx, awemeID, 1)
}

// UnlikePost removes a like. Same route as LikePost, type=0.
func (c *Client) UnlikePost(ctx context.Context, awemeID string) (*DiggResponse, error) {
	return c.commitDigg(ctx, awemeID, 0)
}

func (c *Client) commitDigg(ctx context.Context, awemeID string, typ int) (*DiggResponse, error) {
	p := c.requestParams()
	p.Set("aweme_id", awemeID)
	p.Set("type", strconv.Itoa(typ))

	var out DiggResponse
	if err := c.do(ctx, "LikePost", http.MethodGet, routeDigg, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// requestParams returns a fresh copy of the baseline device parameters.
func (c *Client) requestParams() Params {
	return c.base.Clone()
}

// do runs one operation through the signed pipeline. The parameter set and
// its serializer travel to the signing interceptor on the context; the
// decoded body lands in out. No retries: the request succeeds once or
// fails once.
func (c *Client) do(ctx context.Context, op, method, path string, p Params, out any) error {
	ctx = withSignState(ctx, &signState{params: p, serialize: EncodeParams})

	rb := c.http.Request(op).Path(path)
	if out != nil {
		rb.DecodeAny(out)
	}

	var err error
	if method == http.MethodPost {
		_, err = rb.Post(ctx)
	} else {
		_, err = rb.Get(ctx)
	}
	return err
}
