package musically

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/awemekit/musically/httpclient"
)

// testClock is the fixed instant every test request is stamped with.
var testClock = time.Unix(1548223202, 123*int64(time.Millisecond))

func testDevice() StaticRequestParams {
	return StaticRequestParams{
		DeviceID:            "6500000000000000001",
		InstallID:           "6500000000000000002",
		OpenUDID:            "b0049f7a25806c51",
		CDID:                "42857e2a-b162-49ab-a3f0-3f709f3873f4",
		DeviceType:          "Pixel",
		DeviceBrand:         "Google",
		DevicePlatform:      "android",
		OSAPI:               "23",
		OSVersion:           "6.0.1",
		Resolution:          "1080*1920",
		DPI:                 "420",
		AC:                  "wifi",
		AppName:             "musical_ly",
		AID:                 "1233",
		VersionName:         "9.1.0",
		VersionCode:         "910",
		BuildNumber:         "9.1.0",
		ManifestVersionCode: "2019030832",
		Channel:             "googleplay",
		AppLanguage:         "en",
		Language:            "en",
		Region:              "US",
		SysRegion:           "US",
		SSMix:               "a",
		AppType:             "normal",
		IsPad:               "0",
	}
}

// signRecorder is a SignFunc that records every call and appends signature
// parameters to the canonical URL, the way the real signer does.
type signRecorder struct {
	mu      sync.Mutex
	rawURLs []string
	ts      []int64
	devices []string
}

func (s *signRecorder) sign(_ context.Context, rawURL string, ts int64, deviceID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawURLs = append(s.rawURLs, rawURL)
	s.ts = append(s.ts, ts)
	s.devices = append(s.devices, deviceID)
	return rawURL + "&as=a1qwert123&cp=cbfe4eb5d3e01234e1", nil
}

func (s *signRecorder) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rawURLs...)
}

func newTestClient(t *testing.T, mock *httpclient.MockTransport) (*Client, *signRecorder) {
	t.Helper()

	rec := &signRecorder{}
	client, err := New(testDevice(), Config{
		SignURL:   rec.sign,
		Transport: mock,
	})
	require.NoError(t, err)
	client.now = func() time.Time { return testClock }
	return client, rec
}

func canonicalQuery(t *testing.T, rawURL string) url.Values {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query()
}

const okBody = `{"status_code":0}`

func TestNew_RequiresSignFunc(t *testing.T) {
	t.Parallel()

	_, err := New(testDevice(), Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSignFunc)
}

func TestGetUser_SignsAndDispatchesSignedURL(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.GetUser(context.Background(), "12345")
	require.NoError(t, err)

	calls := rec.calls()
	require.Len(t, calls, 1)

	// Canonical URL: base + path + ordered query.
	u, err := url.Parse(calls[0])
	require.NoError(t, err)
	assert.Equal(t, "/aweme/v1/user/", u.Path)
	assert.Equal(t, "api2.musical.ly", u.Host)

	q := u.Query()
	assert.Equal(t, "12345", q.Get("user_id"))
	assert.Equal(t, "6500000000000000001", q.Get("device_id"))
	assert.Equal(t, "1548223202", q.Get("ts"))
	assert.Equal(t, "1548223202123", q.Get("_rticket"))

	// Signer inputs.
	assert.Equal(t, int64(1548223202), rec.ts[0])
	assert.Equal(t, "6500000000000000001", rec.devices[0])

	// The dispatched request carries the signed URL verbatim.
	require.Equal(t, 1, mock.RequestCount())
	dispatched := mock.LastRequest()
	assert.Equal(t, calls[0]+"&as=a1qwert123&cp=cbfe4eb5d3e01234e1", dispatched.URL.String())
	assert.Equal(t, "api2.musical.ly", dispatched.Host)
}

func TestSignerFailure_RequestNeverDispatched(t *testing.T) {
	t.Parallel()

	errSigner := errors.New("signer unavailable")
	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)

	client, err := New(testDevice(), Config{
		SignURL: func(_ context.Context, _ string, _ int64, _ string) (string, error) {
			return "", errSigner
		},
		Transport: mock,
	})
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "12345")
	require.Error(t, err)

	var signErr *SigningError
	require.ErrorAs(t, err, &signErr)
	assert.ErrorIs(t, err, errSigner)

	assert.Zero(t, mock.RequestCount(), "no request may reach the transport when signing fails")
}

func TestFollowUnfollow_SameRouteOnlyTypeDiffers(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.Follow(context.Background(), "u42")
	require.NoError(t, err)
	_, err = client.Unfollow(context.Background(), "u42")
	require.NoError(t, err)

	calls := rec.calls()
	require.Len(t, calls, 2)

	followURL, err := url.Parse(calls[0])
	require.NoError(t, err)
	unfollowURL, err := url.Parse(calls[1])
	require.NoError(t, err)

	assert.Equal(t, "/aweme/v1/commit/follow/user/", followURL.Path)
	assert.Equal(t, followURL.Path, unfollowURL.Path)

	followQ := followURL.Query()
	unfollowQ := unfollowURL.Query()
	assert.Equal(t, "1", followQ.Get("type"))
	assert.Equal(t, "0", unfollowQ.Get("type"))

	followQ.Del("type")
	unfollowQ.Del("type")
	assert.Equal(t, followQ, unfollowQ, "only the type field may differ")
}

func TestLikeUnlike_SameRouteOnlyTypeDiffers(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.LikePost(context.Background(), "6800000000000000001")
	require.NoError(t, err)
	_, err = client.UnlikePost(context.Background(), "6800000000000000001")
	require.NoError(t, err)

	calls := rec.calls()
	require.Len(t, calls, 2)

	likeURL, err := url.Parse(calls[0])
	require.NoError(t, err)
	assert.Equal(t, "/aweme/v1/commit/item/digg/", likeURL.Path)

	likeQ := canonicalQuery(t, calls[0])
	unlikeQ := canonicalQuery(t, calls[1])
	assert.Equal(t, "6800000000000000001", likeQ.Get("aweme_id"))
	assert.Equal(t, "1", likeQ.Get("type"))
	assert.Equal(t, "0", unlikeQ.Get("type"))
}

func TestLoginWithEmail_ObfuscatesCredentials(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, `{"message":"success","data":{"user_id":6800000000000000001}}`)
	client, rec := newTestClient(t, mock)

	resp, err := client.LoginWithEmail(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Message)
	assert.Equal(t, "6800000000000000001", resp.Data.UserID.String())

	calls := rec.calls()
	require.Len(t, calls, 1)

	u, err := url.Parse(calls[0])
	require.NoError(t, err)
	assert.Equal(t, "/passport/user/login/", u.Path)
	assert.Equal(t, http.MethodPost, mock.LastRequest().Method)

	q := u.Query()
	assert.Equal(t, "1", q.Get("mix_mode"))
	assert.NotEqual(t, "a@b.com", q.Get("email"), "plaintext email must never be sent")
	assert.NotEqual(t, "pw", q.Get("password"), "plaintext password must never be sent")

	email, err := Deobfuscate(q.Get("email"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	password, err := Deobfuscate(q.Get("password"))
	require.NoError(t, err)
	assert.Equal(t, "pw", password)
}

func TestListPosts_MergesListingDefaults(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.ListPosts(context.Background(), ListOptions{UserID: "u1"})
	require.NoError(t, err)

	q := canonicalQuery(t, rec.calls()[0])
	assert.Equal(t, "u1", q.Get("user_id"), "user_id must never be overwritten")
	assert.Equal(t, "0", q.Get("cursor"))
	assert.Equal(t, "20", q.Get("count"))
}

func TestListPosts_ExplicitPaginationWins(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.ListPosts(context.Background(), ListOptions{UserID: "u1", Cursor: 40, Count: 5})
	require.NoError(t, err)

	q := canonicalQuery(t, rec.calls()[0])
	assert.Equal(t, "40", q.Get("cursor"))
	assert.Equal(t, "5", q.Get("count"))
}

func TestListFollowersAndFollowing_HitDistinctRoutes(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, rec := newTestClient(t, mock)

	_, err := client.ListFollowers(context.Background(), ListOptions{UserID: "u1"})
	require.NoError(t, err)
	_, err = client.ListFollowing(context.Background(), ListOptions{UserID: "u1"})
	require.NoError(t, err)

	calls := rec.calls()
	require.Len(t, calls, 2)

	followers, err := url.Parse(calls[0])
	require.NoError(t, err)
	following, err := url.Parse(calls[1])
	require.NoError(t, err)

	assert.Equal(t, "/aweme/v1/user/follower/list/", followers.Path)
	assert.Equal(t, "/aweme/v1/user/following/list/", following.Path)
}

func TestGetUser_DecodesBigIdentifiersExactly(t *testing.T) {
	t.Parallel()

	body := `{"status_code":0,"user":{"uid":6800000000000000001,"nickname":"carlos","follower_count":1234}}`
	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, body)
	client, _ := newTestClient(t, mock)

	resp, err := client.GetUser(context.Background(), "6800000000000000001")
	require.NoError(t, err)

	require.NoError(t, resp.Err())
	assert.Equal(t, "6800000000000000001", resp.User.UID.String())
	assert.Equal(t, "carlos", resp.User.Nickname)
	assert.Equal(t, int64(1234), resp.User.FollowerCount)
}

func TestBaseResponse_ErrExposesRemoteStatus(t *testing.T) {
	t.Parallel()

	body := `{"status_code":8,"status_msg":"login required"}`
	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, body)
	client, _ := newTestClient(t, mock)

	resp, err := client.GetUser(context.Background(), "12345")
	require.NoError(t, err, "remote application errors are not translated by the pipeline")

	remoteErr := resp.Err()
	require.Error(t, remoteErr)

	var apiErr *APIError
	require.ErrorAs(t, remoteErr, &apiErr)
	assert.Equal(t, 8, apiErr.Code)
	assert.Equal(t, "login required", apiErr.Message)
}

func TestClient_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)
	client, _ := newTestClient(t, mock)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			_, err := client.GetUser(context.Background(), "12345")
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 16, mock.RequestCount())
}

func TestClient_SessionCookiesSharedAcrossRequests(t *testing.T) {
	t.Parallel()

	headers := make(http.Header)
	headers.Add("Set-Cookie", "sessionid=abc123; Path=/")
	mock := httpclient.NewMockTransport().StubResponseWithHeaders(http.StatusOK, okBody, headers)
	client, _ := newTestClient(t, mock)

	_, err := client.GetUser(context.Background(), "12345")
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "12345")
	require.NoError(t, err)

	cookies := mock.LastRequest().Cookies()
	require.NotEmpty(t, cookies, "second request should carry the session cookie")
	assert.Equal(t, "sessionid", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
}

func TestClient_ConfigIsReadOnlyAfterConstruction(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, okBody)

	cfg := Config{
		SignURL:   func(_ context.Context, rawURL string, _ int64, _ string) (string, error) { return rawURL, nil },
		Transport: mock,
	}
	client, err := New(testDevice(), cfg)
	require.NoError(t, err)

	cfg.BaseURL = "https://evil.example.com"
	assert.Equal(t, defaultBaseURL, client.Config().BaseURL)

	view := client.Config()
	view.Host = "evil.example.net"
	assert.Equal(t, defaultHost, client.Config().Host)
}
