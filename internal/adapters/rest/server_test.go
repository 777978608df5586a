package rest_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/rest"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
	"go.uber.org/mock/gomock"
)

type fakeInstaller struct {
	mu          sync.Mutex
	status      domain.InstallationStatus
	installDir  string
	installOpts installer.InstallOptions
	installErr  error
	shutdownErr error
	updaterArgs []string
}

func (f *fakeInstaller) Attributes() domain.BaseAttributes {
	return domain.BaseAttributes{Name: "yuzu", TargetURL: "https://example.com/config.toml"}
}

func (f *fakeInstaller) LoadConfig(context.Context) (*domain.Config, error) {
	return &domain.Config{Packages: []domain.PackageDescription{{Name: "yuzu"}}}, nil
}

func (f *fakeInstaller) DefaultPath() (string, error) { return "/home/alice/.yuzu", nil }

func (f *fakeInstaller) Status() domain.InstallationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeInstaller) Packages(context.Context) ([]installer.PackageStatus, error) {
	return []installer.PackageStatus{
		{PackageDescription: domain.PackageDescription{Name: "yuzu"}, Installed: true},
	}, nil
}

func (f *fakeInstaller) SetInstallDir(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installDir = dir
	return nil
}

func (f *fakeInstaller) Install(_ context.Context, opts installer.InstallOptions, m tree.Messenger) error {
	f.mu.Lock()
	f.installOpts = opts
	f.mu.Unlock()
	m(domain.DisplayMessage("Installing...", 0.5))
	m(domain.PackageInstalledMessage())
	return f.installErr
}

func (f *fakeInstaller) Uninstall(_ context.Context, m tree.Messenger) error {
	m(domain.DisplayMessage("Uninstall complete", 1))
	return nil
}

func (f *fakeInstaller) UpdateUpdater(_ context.Context, args []string, _ tree.Messenger) error {
	f.updaterArgs = args
	return domain.ErrNoUpdaterAvailable
}

func (f *fakeInstaller) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownErr
}

func newServer(t *testing.T, inst *fakeInstaller) (*rest.Server, *httptest.Server) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	s := rest.NewServer(inst, log)
	s.DarkMode = func() bool { return true }
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v any) *http.Response {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

func readStream(t *testing.T, resp *http.Response) []domain.InstallMessage {
	t.Helper()
	defer resp.Body.Close()
	assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	var out []domain.InstallMessage
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		var msg domain.InstallMessage
		require.NoError(t, json.Unmarshal(sc.Bytes(), &msg))
		out = append(out, msg)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestServer_ReadEndpoints(t *testing.T) {
	inst := &fakeInstaller{status: domain.InstallationStatus{InstallPath: "/opt/yuzu", PreexistingInstall: true}}
	_, srv := newServer(t, inst)

	var attrs domain.BaseAttributes
	resp := getJSON(t, srv, "/api/attrs", &attrs)
	assert.Equal(t, "yuzu", attrs.Name)
	_, err := uuid.Parse(resp.Header.Get(rest.RequestIDHeader))
	require.NoError(t, err)

	var cfg domain.Config
	getJSON(t, srv, "/api/config", &cfg)
	require.Len(t, cfg.Packages, 1)

	var dark bool
	getJSON(t, srv, "/api/dark-mode", &dark)
	assert.True(t, dark)

	var def map[string]string
	getJSON(t, srv, "/api/default-path", &def)
	assert.Equal(t, "/home/alice/.yuzu", def["path"])

	var status domain.InstallationStatus
	getJSON(t, srv, "/api/installation-status", &status)
	assert.Equal(t, "/opt/yuzu", status.InstallPath)
	assert.True(t, status.PreexistingInstall)

	var pkgs []map[string]any
	getJSON(t, srv, "/api/packages", &pkgs)
	require.Len(t, pkgs, 1)
	assert.Equal(t, true, pkgs[0]["installed"])
}

func TestServer_VerifyPath(t *testing.T) {
	_, srv := newServer(t, &fakeInstaller{})

	var got map[string]bool
	getJSON(t, srv, "/api/verify-path?path="+url.QueryEscape(t.TempDir()), &got)
	assert.True(t, got["exists"])

	getJSON(t, srv, "/api/verify-path?path=/does/not/exist", &got)
	assert.False(t, got["exists"])
}

func TestServer_KeepsIncomingRequestID(t *testing.T) {
	_, srv := newServer(t, &fakeInstaller{})
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/attrs", nil)
	require.NoError(t, err)
	req.Header.Set(rest.RequestIDHeader, id)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(rest.RequestIDHeader))
}

func TestServer_OnRequestRunsForEveryRequest(t *testing.T) {
	s, srv := newServer(t, &fakeInstaller{})
	var mu sync.Mutex
	calls := 0
	s.OnRequest = func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	var attrs domain.BaseAttributes
	getJSON(t, srv, "/api/attrs", &attrs)
	var dark bool
	getJSON(t, srv, "/api/dark-mode", &dark)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestServer_StartInstall(t *testing.T) {
	inst := &fakeInstaller{}
	_, srv := newServer(t, inst)

	form := url.Values{"path": {"/opt/yuzu"}, "mode": {"repair"}, "yuzu": {"true"}, "citra": {"false"}}
	resp, err := srv.Client().PostForm(srv.URL+"/api/start-install", form)
	require.NoError(t, err)

	assert.Equal(t, []domain.InstallMessage{
		domain.StatusMessage("Installing...", 0.5),
		domain.PackageInstalledEntry(),
		domain.EOFMessage(),
	}, readStream(t, resp))
	assert.Equal(t, "/opt/yuzu", inst.installDir)
	assert.Equal(t, []string{"yuzu"}, inst.installOpts.Items)
	assert.True(t, inst.installOpts.Repair)
}

func TestServer_StartInstallFailure(t *testing.T) {
	inst := &fakeInstaller{
		status:     domain.InstallationStatus{PreexistingInstall: true},
		installErr: errors.New("disk full"),
	}
	_, srv := newServer(t, inst)

	resp, err := srv.Client().PostForm(srv.URL+"/api/start-install", url.Values{"yuzu": {"true"}})
	require.NoError(t, err)

	msgs := readStream(t, resp)
	assert.Equal(t, domain.ErrorMessage("disk full"), msgs[len(msgs)-2])
	assert.Equal(t, domain.EOFMessage(), msgs[len(msgs)-1])
	assert.Empty(t, inst.installDir)
}

func TestServer_StartInstallRequiresPath(t *testing.T) {
	_, srv := newServer(t, &fakeInstaller{})

	resp, err := srv.Client().PostForm(srv.URL+"/api/start-install", url.Values{"yuzu": {"true"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UninstallAndUpdateUpdater(t *testing.T) {
	inst := &fakeInstaller{}
	s, srv := newServer(t, inst)
	s.Args = []string{"install", "yuzu"}

	resp, err := srv.Client().Post(srv.URL+"/api/uninstall", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.InstallMessage{
		domain.StatusMessage("Uninstall complete", 1),
		domain.EOFMessage(),
	}, readStream(t, resp))

	resp, err = srv.Client().Post(srv.URL+"/api/update-updater", "", nil)
	require.NoError(t, err)
	msgs := readStream(t, resp)
	assert.True(t, slices.Contains(msgs, domain.ErrorMessage(domain.ErrNoUpdaterAvailable.Error())))
	assert.Equal(t, []string{"install", "yuzu"}, inst.updaterArgs)
}

func TestServer_Exit(t *testing.T) {
	inst := &fakeInstaller{}
	s, srv := newServer(t, inst)
	exited := make(chan struct{}, 2)
	s.OnExit = func() { exited <- struct{}{} }

	resp, err := srv.Client().Get(srv.URL + "/api/exit")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		t.Fatal("OnExit was not called")
	}

	inst.mu.Lock()
	inst.shutdownErr = errors.New("launch failed")
	inst.mu.Unlock()
	resp, err = srv.Client().Get(srv.URL + "/api/exit")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, exited)
}

func TestDesktopPrefersDark(t *testing.T) {
	t.Setenv("GTK_THEME", "Adwaita:dark")
	assert.True(t, rest.DesktopPrefersDark())

	t.Setenv("GTK_THEME", "Adwaita")
	assert.False(t, rest.DesktopPrefersDark())
}

func TestServer_UnknownRoute(t *testing.T) {
	_, srv := newServer(t, &fakeInstaller{})

	resp, err := srv.Client().Post(srv.URL+"/api/attrs", "", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_ServeStopsWithContext(t *testing.T) {
	s, _ := newServer(t, &fakeInstaller{})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/api/attrs")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}
