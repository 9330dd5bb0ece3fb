package cheat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const reconDoc = "# Recon\n" +
	"#cat/recon\n" +
	"## Port Scan\n" +
	"```\n" +
	"nmap -sV -sC <ip> -oN scan.txt\n" +
	"```\n"

func TestParseBasic(t *testing.T) {
	t.Parallel()

	cheats := Parse(reconDoc, "default", "recon.md")
	require.Len(t, cheats, 1)

	c := cheats[0]
	require.Equal(t, "Port Scan", c.Title)
	require.Equal(t, "nmap -sV -sC <ip> -oN scan.txt", c.Body)
	require.Equal(t, []string{"cat/recon"}, c.Tags)
	require.Equal(t, []string{"ip"}, c.Params)
	require.Equal(t, "default", c.Vault)
	require.Equal(t, "recon.md", c.File)
	require.Equal(t, 3, c.Line)
	require.NotEmpty(t, c.ID)
}

func TestParseIdempotent(t *testing.T) {
	t.Parallel()

	first := Parse(reconDoc, "default", "recon.md")
	second := Parse(reconDoc, "default", "recon.md")
	require.Equal(t, first, second)
}

func TestParseTagInheritance(t *testing.T) {
	t.Parallel()

	doc := "# Recon\n" +
		"#cat/recon\n" +
		"## First\n" +
		"```\nnmap <ip>\n```\n" +
		"## Second\n" +
		"```\nping <ip>\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 2)
	for _, c := range cheats {
		require.Equal(t, []string{"cat/recon"}, c.Tags)
	}
}

func TestParseLocalTagsExtendInherited(t *testing.T) {
	t.Parallel()

	doc := "# Web\n" +
		"#cat/web\n" +
		"## Fuzz\n" +
		"#cat/fuzzing\n" +
		"```\nffuf -u <url>/FUZZ -w <wordlist>\n```\n" +
		"## Curl\n" +
		"```\ncurl -sk <url>\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 2)
	require.Equal(t, []string{"cat/web", "cat/fuzzing"}, cheats[0].Tags)
	// Local tags are scoped to their own section.
	require.Equal(t, []string{"cat/web"}, cheats[1].Tags)
}

func TestParseHeaderResetsContext(t *testing.T) {
	t.Parallel()

	doc := "# Recon\n#cat/recon\n" +
		"## Scan\n```\nnmap <ip>\n```\n" +
		"# Post\n#cat/post\n" +
		"## Loot\n```\ncat /etc/shadow\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 2)
	require.Equal(t, []string{"cat/recon"}, cheats[0].Tags)
	require.Equal(t, []string{"cat/post"}, cheats[1].Tags)
}

func TestParseTagOnHeaderLine(t *testing.T) {
	t.Parallel()

	doc := "# Recon #cat/recon\n" +
		"## Scan\n```\nnmap <ip>\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 1)
	require.Equal(t, []string{"cat/recon"}, cheats[0].Tags)
}

func TestParseMultipleFencesConcatenate(t *testing.T) {
	t.Parallel()

	doc := "## Two Step\n" +
		"```\nfirst <a>\n```\n" +
		"some prose\n" +
		"```\nsecond <b>\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 1)
	require.Equal(t, "first <a>\nsecond <b>", cheats[0].Body)
	require.Equal(t, []string{"a", "b"}, cheats[0].Params)
}

func TestParseHeadingWithoutCodeIsDropped(t *testing.T) {
	t.Parallel()

	doc := "## Just A Heading\nsome notes, no fence\n" +
		"## Real\n```\nls\n```\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 1)
	require.Equal(t, "Real", cheats[0].Title)
}

func TestParseTildeFence(t *testing.T) {
	t.Parallel()

	doc := "## Tilde\n~~~\nwhoami\n~~~\n"
	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 1)
	require.Equal(t, "whoami", cheats[0].Body)
}

func TestParseUnclosedFenceAtEOFStillEmits(t *testing.T) {
	t.Parallel()

	cheats := Parse("## Truncated\n```\nnmap <ip>", "default", "a.md")
	require.Len(t, cheats, 1)
	require.Equal(t, "nmap <ip>", cheats[0].Body)
}

func TestParseGarbageIsNotFatal(t *testing.T) {
	t.Parallel()

	doc := "```\norphan block, no title\n```\n" +
		"#### deep heading\n" +
		"## Good\n```\nid\n```\n" +
		"random <<>> noise\n"

	cheats := Parse(doc, "v", "f.md")
	require.Len(t, cheats, 1)
	require.Equal(t, "Good", cheats[0].Title)
}

func TestExtractParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want []string
	}{
		{"dedup first seen", "nmap -sV -sC <ip> -oN <ip>.txt", []string{"ip"}},
		{"order", "nxc smb <ip> -u <user> -p <pass> --shares <ip>", []string{"ip", "user", "pass"}},
		{"default suffix", "ffuf -w <wordlist|/usr/share/wordlists/common.txt>", []string{"wordlist"}},
		{"comment still counts", "# remember to set <domain>\ndig <domain>", []string{"domain"}},
		{"spaced token ignored", "echo <not a param> <real>", []string{"real"}},
		{"none", "uname -a", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ExtractParams(tc.body))
		})
	}
}
