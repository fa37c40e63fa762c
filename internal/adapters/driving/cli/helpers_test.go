package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// mockSearchService implements driving.SearchService.
type mockSearchService struct {
	mu         sync.Mutex
	results    []domain.SearchResult
	degraded   []domain.Category
	err        error
	lastQuery  string
	lastPolicy domain.SearchPolicy
	calls      int
}

func (m *mockSearchService) SearchAll(context.Context, string) ([]domain.SearchResult, error) {
	panic("commands search through Search")
}

func (m *mockSearchService) SearchOutcome(context.Context, string) (domain.SearchOutcome, error) {
	panic("commands search through Search")
}

func (m *mockSearchService) Search(_ context.Context, query string, policy domain.SearchPolicy) (domain.SearchReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = query
	m.lastPolicy = policy
	if m.err != nil {
		return domain.SearchReport{}, m.err
	}
	return domain.SearchReport{Results: m.results, Degraded: m.degraded}, nil
}

// mockSettingsService implements driving.SettingsService over a map.
type mockSettingsService struct {
	settings domain.Settings
	values   map[string]string
	getErr   error
	setErr   error
	path     string
}

func newMockSettings() *mockSettingsService {
	s := domain.DefaultSettings()
	s.Site.URL = "https://contoso.sharepoint.com/sites/hr"
	return &mockSettingsService{settings: s, values: map[string]string{}}
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.getErr
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if value == "" {
		delete(m.values, key)
	} else {
		m.values[key] = value
	}
	if key == tokenKey {
		m.settings.Auth.Token = value
	}
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"auth.token", "search.debounce_ms", "site.url"}
}

func (m *mockSettingsService) Validate() error {
	return m.settings.Validate()
}

func (m *mockSettingsService) ConfigPath() string {
	return m.path
}

// mockActionService implements driving.ResultActionService.
type mockActionService struct {
	opened []string
}

func (m *mockActionService) OpenResult(_ context.Context, r *domain.SearchResult) error {
	m.opened = append(m.opened, r.URL)
	return nil
}

// mockController implements driving.SearchController.
type mockController struct {
	mu           sync.Mutex
	state        domain.SearchState
	closed       bool
	reconfigured []domain.Settings
}

func (m *mockController) SetQuery(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Query = q
}
func (m *mockController) Submit() {}
func (m *mockController) Clear()  {}
func (m *mockController) SelectTab(tab domain.Tab) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.ActiveTab = tab
}
func (m *mockController) State() domain.SearchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}
func (m *mockController) Subscribe(func(domain.SearchState)) {}
func (m *mockController) Reconfigure(s domain.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconfigured = append(m.reconfigured, s)
}
func (m *mockController) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			ID: "list-7-abc", Title: "Quarterly review", Category: domain.CategoryListItem,
			URL: "https://contoso/list/7", Description: "Agenda and notes", ContainerName: "Meetings",
		},
		{
			ID: "doc-/a.docx", Title: "Budget 2024", Category: domain.CategoryDocument,
			URL: "https://contoso/a.docx", FileType: "DOCX", ContainerName: "Finance",
			Author: "Sam Lee", Modified: "3/4/2024", SizeLabel: "1.5 KB",
		},
	}
}

// testEnv captures the services installed by setupTestServices.
type testEnv struct {
	search     *mockSearchService
	settings   *mockSettingsService
	actions    *mockActionService
	controller *mockController
	out        *bytes.Buffer
	errOut     *bytes.Buffer
}

// setupTestServices installs mock services and resets command state.
// The returned cleanup restores the previous globals.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		search:     &mockSearchService{results: sampleResults()},
		settings:   newMockSettings(),
		actions:    &mockActionService{},
		controller: &mockController{state: domain.NewSearchState()},
		out:        new(bytes.Buffer),
		errOut:     new(bytes.Buffer),
	}

	prevBootstrap := bootstrap
	bootstrap = nil
	SetServices(&Services{
		Search:   env.search,
		Settings: env.settings,
		Actions:  env.actions,
		NewController: func(domain.Settings) driving.SearchController {
			return env.controller
		},
	})

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.errOut)

	return env, func() {
		bootstrap = prevBootstrap
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		searchJSON = false
		searchTab = string(domain.TabAll)
		siteURL = ""
		configDir = ""
		verbose = false
		authLoginToken = ""
		_ = mcpServeCmd.Flags().Set("port", "0")
	}
}
