package cheat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOverridePrecedence(t *testing.T) {
	t.Parallel()

	c := testCheat("Scan", "nmap -sV -sC <ip> -oN <ip>.txt")
	res := Resolve(c,
		map[string]string{"ip": "10.0.0.1"},
		map[string]string{"ip": "10.0.0.2"},
	)
	require.Equal(t, "nmap -sV -sC 10.0.0.2 -oN 10.0.0.2.txt", res.Command)
	require.Empty(t, res.Unresolved)
	require.Empty(t, res.NewParams)
}

func TestResolveUnresolvedKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	c := testCheat("Zone", "dig axfr <domain> @<ns>")
	res := Resolve(c, map[string]string{"ns": "10.0.0.53"}, nil)
	require.Equal(t, "dig axfr <domain> @10.0.0.53", res.Command)
	require.Equal(t, []string{"domain"}, res.Unresolved)
	// domain is also unknown to the globals map entirely.
	require.Equal(t, []string{"domain"}, res.NewParams)
}

func TestResolveEmptyGlobalCountsAsUnset(t *testing.T) {
	t.Parallel()

	c := testCheat("Zone", "dig axfr <domain>")
	res := Resolve(c, map[string]string{"domain": ""}, nil)
	require.Equal(t, "dig axfr <domain>", res.Command)
	require.Equal(t, []string{"domain"}, res.Unresolved)
	// Seeded (present but empty) params are not reported as new.
	require.Empty(t, res.NewParams)
}

func TestResolveNoEscaping(t *testing.T) {
	t.Parallel()

	c := testCheat("Exec", "sh -c '<cmd>'")
	res := Resolve(c, map[string]string{"cmd": "echo \"a b\"; id"}, nil)
	require.Equal(t, "sh -c 'echo \"a b\"; id'", res.Command)
}

func TestResolveEndToEnd(t *testing.T) {
	t.Parallel()

	doc := "# Recon\n" +
		"#cat/recon\n" +
		"## Port Scan\n" +
		"```\n" +
		"nmap -sV -sC <ip> -oN scan.txt\n" +
		"```\n"
	cheats := Parse(doc, "default", "recon.md")
	require.Len(t, cheats, 1)

	c := cheats[0]
	require.Equal(t, "Port Scan", c.Title)
	require.Equal(t, []string{"cat/recon"}, c.Tags)
	require.Equal(t, []string{"ip"}, c.Params)

	res := Resolve(c, map[string]string{"ip": "10.10.10.1"}, nil)
	require.Equal(t, "nmap -sV -sC 10.10.10.1 -oN scan.txt", res.Command)
	require.Empty(t, res.Unresolved)
}

func TestResolveDefaultSuffixKeyLookup(t *testing.T) {
	t.Parallel()

	c := testCheat("Fuzz", "ffuf -w <wordlist|raft.txt> -u <url>")
	res := Resolve(c,
		map[string]string{"wordlist": "/opt/lists/big.txt", "url": "http://target"},
		nil,
	)
	// The |default suffix is part of the token, not the lookup key.
	require.Equal(t, "ffuf -w /opt/lists/big.txt -u http://target", res.Command)
}
