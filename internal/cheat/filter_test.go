package cheat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func filterFixture() *Index {
	return NewIndex([]Cheat{
		testCheat("Port Scan", "nmap -sV -sC <ip> -oN scan.txt", "cat/recon"),
		testCheat("Ping Sweep", "fping -a -g <range>", "cat/recon"),
		testCheat("Dir Fuzz", "ffuf -u <url>/FUZZ -w <wordlist>", "cat/web"),
		testCheat("SMB Shares", "nxc smb <ip> -u <user> -p <pass> --shares", "cat/ad"),
	})
}

func TestFilterEmptyQueryShowsEverything(t *testing.T) {
	t.Parallel()

	idx := filterFixture()
	view := Filter("", idx)

	require.Equal(t, idx.Categories(), view.Categories)
	all := view.CheatsByCategory[CategoryAll]
	require.Len(t, all, 4)
	// Original load order is preserved.
	require.Equal(t, "Port Scan", all[0].Title)
	require.Equal(t, "SMB Shares", all[3].Title)
}

func TestFilterMatchesTitleBodyAndTags(t *testing.T) {
	t.Parallel()

	idx := filterFixture()

	cases := []struct {
		query string
		want  []string
	}{
		{"sweep", []string{"Ping Sweep"}},           // title
		{"FUZZ", []string{"Dir Fuzz"}},              // case-insensitive, body+title
		{"-sV", []string{"Port Scan"}},              // body
		{"cat/ad", []string{"SMB Shares"}},          // tag
		{"<ip>", []string{"Port Scan", "SMB Shares"}}, // body, order preserved
		{"no-such-thing", nil},
	}
	for _, tc := range cases {
		view := Filter(tc.query, idx)
		var got []string
		for _, c := range view.CheatsByCategory[CategoryAll] {
			got = append(got, c.Title)
		}
		require.Equal(t, tc.want, got, "query %q", tc.query)
	}
}

func TestFilterCategoryVisibility(t *testing.T) {
	t.Parallel()

	idx := filterFixture()

	// Query matching only the tag name keeps the category visible.
	view := Filter("web", idx)
	require.Contains(t, view.Categories, "cat/web")
	require.NotContains(t, view.Categories, "cat/recon")

	// Query matching a member keeps its category visible too.
	view = Filter("fping", idx)
	require.Contains(t, view.Categories, "cat/recon")
	require.NotContains(t, view.Categories, "cat/ad")

	// "all" is always visible.
	view = Filter("zzzzz", idx)
	require.Equal(t, []string{CategoryAll}, view.Categories)
	require.Empty(t, view.CheatsByCategory[CategoryAll])
}

// Extending a query can only narrow the visible cheat set.
func TestFilterMonotonicInSpecificity(t *testing.T) {
	t.Parallel()

	idx := filterFixture()
	queries := []string{"n", "nm", "nma", "nmap", "nmap ", "nmap -sV"}

	prev := map[string]bool{}
	for _, c := range Filter(queries[0], idx).CheatsByCategory[CategoryAll] {
		prev[c.ID] = true
	}
	for _, q := range queries[1:] {
		cur := map[string]bool{}
		for _, c := range Filter(q, idx).CheatsByCategory[CategoryAll] {
			cur[c.ID] = true
			require.True(t, prev[c.ID], "query %q surfaced a cheat its prefix %q did not", q, strings.TrimSuffix(q, q[len(q)-1:]))
		}
		prev = cur
	}
}

func TestFilterIsPure(t *testing.T) {
	t.Parallel()

	idx := filterFixture()
	first := Filter("nmap", idx)
	second := Filter("nmap", idx)
	require.Equal(t, first, second)
	// The index itself is untouched.
	require.Len(t, idx.CheatsIn(CategoryAll), 4)
}
