package cheat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCheat(title, body string, tags ...string) Cheat {
	return Cheat{
		ID:     cheatID("test", "test.md", 1, title),
		Title:  title,
		Body:   body,
		Tags:   tags,
		Params: ExtractParams(body),
		Vault:  "test",
		File:   "test.md",
	}
}

func TestIndexCategoryOrder(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]Cheat{
		testCheat("Scan", "nmap <ip>", "cat/recon"),
		testCheat("Fuzz", "ffuf -u <url>", "cat/web", "cat/fuzzing"),
		testCheat("Sweep", "ping <ip>", "cat/recon"),
	})

	// "all" first, then first-appearance order across the load order.
	require.Equal(t, []string{"all", "cat/recon", "cat/web", "cat/fuzzing"}, idx.Categories())
	require.Len(t, idx.CheatsIn(CategoryAll), 3)

	recon := idx.CheatsIn("cat/recon")
	require.Len(t, recon, 2)
	require.Equal(t, "Scan", recon[0].Title)
	require.Equal(t, "Sweep", recon[1].Title)
}

func TestIndexToolTree(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]Cheat{
		testCheat("Scan", "nmap -sV <ip>"),
		testCheat("Scan as root", "sudo nmap -sS <ip>"),
		testCheat("Shares", "nxc smb <ip> --shares"),
		testCheat("Assignment only", "FOO=bar"),
	})

	tree, tools := idx.ToolTree()
	require.Equal(t, []string{"nmap", "nxc", "other"}, tools)
	require.Len(t, tree["nmap"], 2)
	require.Len(t, tree["other"], 1)

	// Cached until the cheat set changes.
	again, _ := idx.ToolTree()
	require.Equal(t, tree, again)

	idx.Append(testCheat("Dig", "dig any <domain>"))
	_, tools = idx.ToolTree()
	require.Equal(t, []string{"dig", "nmap", "nxc", "other"}, tools)
}

func TestToolName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want string
	}{
		{"nmap -sV <ip>", "nmap"},
		{"sudo /usr/bin/Nmap -sS <ip>", "nmap"},
		{"HTTP_PROXY=http://127.0.0.1:8080 curl <url>", "curl"},
		{"env time nice whoami", "whoami"},
		{"A=1 B=2", "other"},
		{"", "other"},
		{"nxc smb <ip>\nsecond-line-tool", "nxc"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ToolName(tc.body), "body %q", tc.body)
	}
}

func TestIndexAppendIsIncremental(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]Cheat{testCheat("Scan", "nmap <ip>", "cat/recon")})
	v := idx.Version()

	idx.Append(testCheat("Loot", "cat <file>", "cat/post"))
	require.Greater(t, idx.Version(), v)
	require.Equal(t, []string{"all", "cat/recon", "cat/post"}, idx.Categories())
	require.Len(t, idx.CheatsIn(CategoryAll), 2)
	require.Len(t, idx.CheatsIn("cat/post"), 1)
}

func TestAllParamNames(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]Cheat{
		testCheat("Scan", "nmap <ip> -p <ports>"),
		testCheat("Fuzz", "ffuf -u <url>/FUZZ -w </usr/share/wordlists/raft.txt>"),
		testCheat("Loot", "smbclient //<ip>/<share> -U <user_name>"),
	})

	// Sorted union; path-like and oversized tokens are filtered out.
	require.Equal(t, []string{"ip", "ports", "share", "url", "user_name"}, idx.AllParamNames())
}
