package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/logger"
)

var (
	searchJSON bool
	searchTab  string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search list items and documents",
	Long: `Runs one search against the configured SharePoint site.

List items (ContentClass:STS_ListItem) and documents (IsDocument:1) are
queried in parallel and printed list items first. Use --tab to show a single
category; the counts always cover both.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchTab, "tab", "t", string(domain.TabAll), "category filter: all, listItems or documents")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON shape printed by --json.
type searchOutput struct {
	Query    string                `json:"query"`
	Tab      domain.Tab            `json:"tab"`
	Counts   searchCounts          `json:"counts"`
	Degraded []domain.Category     `json:"degraded,omitempty"`
	Results  []domain.SearchResult `json:"results"`
}

type searchCounts struct {
	All       int `json:"all"`
	ListItems int `json:"listItems"`
	Documents int `json:"documents"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	tab := domain.Tab(searchTab)
	if !tab.IsValid() {
		return fmt.Errorf("%w: unknown tab %q (want all, listItems or documents)", domain.ErrInvalidInput, searchTab)
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	settings, err := resolveSettings()
	if err != nil {
		return err
	}
	if err := checkConfigured(settings); err != nil {
		return err
	}

	policy := settings.Search.Policy()
	if err := policy.CheckQuery(query); err != nil {
		return err
	}

	ctx := cmd.Context()
	if settings.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Search.Timeout)
		defer cancel()
	}

	report, err := searchService.Search(ctx, query, policy)
	if err != nil {
		logger.Error("search %q failed: %v", query, err)
		return fmt.Errorf("search failed: %w", err)
	}

	state := domain.NewSearchState()
	state.Query = strings.TrimSpace(query)
	state.HasSearched = true
	state.ActiveTab = tab
	state.Results = report.Results
	state.Degraded = report.Degraded

	if searchJSON {
		return outputSearchJSON(cmd, state)
	}
	return outputSearchTable(cmd, state)
}

func outputSearchJSON(cmd *cobra.Command, state domain.SearchState) error {
	counts := state.Counts()
	out := searchOutput{
		Query:    state.Query,
		Tab:      state.ActiveTab,
		Counts:   searchCounts{All: counts.All, ListItems: counts.ListItems, Documents: counts.Documents},
		Degraded: state.Degraded,
		Results:  state.Filtered(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, state domain.SearchState) error {
	for _, c := range state.Degraded {
		cmd.PrintErrf("warning: %s results unavailable\n", c.Label())
	}

	out := cmd.OutOrStdout()
	filtered := state.Filtered()
	if len(state.Results) > 0 {
		counts := state.Counts()
		tabs := make([]string, 0, len(domain.Tabs()))
		for _, tab := range domain.Tabs() {
			label := fmt.Sprintf("%s (%d)", tab.Label(), counts.For(tab))
			if tab == state.ActiveTab {
				label = "[" + label + "]"
			}
			tabs = append(tabs, label)
		}
		fmt.Fprintln(out, strings.Join(tabs, "  "))
		fmt.Fprintln(out)
	}

	if len(filtered) == 0 {
		fmt.Fprintf(out, "No results found for %q.\n", state.Query)
		fmt.Fprintln(out, "Try different keywords or broaden your search.")
		return nil
	}

	for i := range filtered {
		r := &filtered[i]
		badge := r.FileType
		if r.Category == domain.CategoryListItem {
			badge = r.Category.Label()
		}
		if badge != "" {
			badge = "  [" + badge + "]"
		}
		fmt.Fprintf(out, "  [%d] %s %s%s\n", i+1, list.Glyph(r), r.Title, badge)
		if desc := list.PlainText(r.Description); desc != "" {
			fmt.Fprintf(out, "      %s\n", desc)
		}
		if meta := resultMeta(r); meta != "" {
			fmt.Fprintf(out, "      %s\n", meta)
		}
		if r.URL != "" {
			fmt.Fprintf(out, "      %s\n", r.URL)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func resultMeta(r *domain.SearchResult) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{r.ContainerName, r.Author, r.Modified, r.SizeLabel} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
