package main

import (
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBot returns a bot with a captured outbound line sink instead of a
// connection.
func testBot(nick, prefix string, superusers ...string) (*Bot, *[]string) {
	cfg := &Config{Nick: nick, Prefix: prefix}
	for _, pat := range superusers {
		cfg.superusers = append(cfg.superusers, regexp.MustCompile(pat))
	}
	b := NewBot(cfg, NewLoggerTo(io.Discard, "error"))
	var lines []string
	b.raw = func(line string) { lines = append(lines, line) }
	return b, &lines
}

func TestSenderUser(t *testing.T) {
	b, _ := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!ident@example.com", "#chan", "hi", false)

	assert.False(t, m.SenderIsServer())
	assert.Equal(t, "alice", m.SenderNick())
	assert.Equal(t, "example.com", m.SenderHost())
	assert.Equal(t, "alice!ident@example.com", m.Sender())
}

func TestSenderServer(t *testing.T) {
	b, _ := testBot("newbot", "!")
	m := NewMessage(b, "372", "irc.example.net", "newbot", "- motd line", false)

	assert.True(t, m.SenderIsServer())
	assert.Equal(t, "", m.SenderHost())
}

func TestIsPM(t *testing.T) {
	b, _ := testBot("newbot", "!")

	assert.False(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "hi", false).IsPM())
	assert.True(t, NewMessage(b, "PRIVMSG", "alice!u@h", "newbot", "hi", false).IsPM())
}

func TestParseCommandPrefix(t *testing.T) {
	b, _ := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!echo hello world", true)

	require.True(t, m.IsCommand())
	assert.Equal(t, "echo", m.Command())
	assert.Equal(t, []string{"hello", "world"}, m.Args())
}

func TestParseCommandAddressed(t *testing.T) {
	b, _ := testBot("bot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "bot: echo hello", true)

	require.True(t, m.IsCommand())
	assert.Equal(t, "echo", m.Command())
	assert.Equal(t, []string{"hello"}, m.Args())
}

func TestParseCommandLowercases(t *testing.T) {
	b, _ := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!Echo x", true)

	assert.Equal(t, "echo", m.Command())
}

func TestParseCommandEmptyText(t *testing.T) {
	b, _ := testBot("newbot", "!")

	// No tokens at all: an empty command name, not an error.
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "", true)
	assert.Equal(t, "", m.Command())
	assert.Empty(t, m.Args())

	// Bare prefix character behaves the same way.
	m = NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!", true)
	assert.Equal(t, "", m.Command())
	assert.Empty(t, m.Args())
}

func TestParseCommandLater(t *testing.T) {
	b, _ := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!ping", false)

	require.False(t, m.IsCommand())
	m.ParseCommand()
	require.True(t, m.IsCommand())
	assert.Equal(t, "ping", m.Command())
}

func TestWasAddressed(t *testing.T) {
	b, _ := testBot("newbot", "!")

	assert.True(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "newbot: do x", false).WasAddressed())
	assert.False(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "other: do x", false).WasAddressed())
	// No trailing space after the mention means no address.
	assert.False(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "newbot", false).WasAddressed())
}

func TestWasAddressedLiteralNick(t *testing.T) {
	// A nick with regexp metacharacters is matched literally.
	b, _ := testBot("new[bot]", "!")

	assert.True(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "new[bot]: hi there", false).WasAddressed())
	assert.False(t, NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "newo: hi there", false).WasAddressed())
}

func TestTextWithoutAddress(t *testing.T) {
	b, _ := testBot("newbot", "!")

	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "newbot: do x", false)
	assert.Equal(t, "do x", m.TextWithoutAddress())

	// No space to split on: the text comes back unchanged.
	m = NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "hello", false)
	assert.Equal(t, "hello", m.TextWithoutAddress())
}

func TestSenderIsSuperuser(t *testing.T) {
	b, _ := testBot("newbot", "!", `^alice!.*@trusted\.example\.com$`)

	assert.True(t, NewMessage(b, "PRIVMSG", "alice!u@trusted.example.com", "#chan", "", false).SenderIsSuperuser())
	assert.False(t, NewMessage(b, "PRIVMSG", "bob!u@trusted.example.com", "#chan", "", false).SenderIsSuperuser())
	assert.False(t, NewMessage(b, "PRIVMSG", "alice!u@evil.example.org", "#chan", "", false).SenderIsSuperuser())
}

func TestReplyInChannel(t *testing.T) {
	b, lines := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!hi", true)

	m.Reply("hi")
	require.Len(t, *lines, 1)
	assert.Equal(t, "PRIVMSG #chan :alice: hi", (*lines)[0])
}

func TestReplyInPrivate(t *testing.T) {
	b, lines := testBot("newbot", "!")
	m := NewMessage(b, "PRIVMSG", "alice!u@h", "newbot", "!hi", true)

	m.Reply("hi")
	require.Len(t, *lines, 1)
	assert.Equal(t, "PRIVMSG alice :hi", (*lines)[0])
}

func TestPmAlwaysGoesToSender(t *testing.T) {
	b, lines := testBot("newbot", "!")

	NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!hi", true).Pm("psst")
	NewMessage(b, "PRIVMSG", "alice!u@h", "newbot", "!hi", true).Pm("psst")
	require.Len(t, *lines, 2)
	assert.Equal(t, "PRIVMSG alice :psst", (*lines)[0])
	assert.Equal(t, "PRIVMSG alice :psst", (*lines)[1])
}

func TestSay(t *testing.T) {
	b, lines := testBot("newbot", "!")

	NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!hi", true).Say("hello")
	NewMessage(b, "PRIVMSG", "alice!u@h", "newbot", "!hi", true).Say("hello")
	require.Len(t, *lines, 2)
	assert.Equal(t, "PRIVMSG #chan :hello", (*lines)[0])
	assert.Equal(t, "PRIVMSG alice :hello", (*lines)[1])
}

func TestNotice(t *testing.T) {
	b, lines := testBot("newbot", "!")

	NewMessage(b, "PRIVMSG", "alice!u@h", "#chan", "!hi", true).Notice("heads up")
	require.Len(t, *lines, 1)
	assert.Equal(t, "NOTICE alice :heads up", (*lines)[0])
}

func TestSetBot(t *testing.T) {
	b1, _ := testBot("newbot", "!")
	b2, _ := testBot("newbot", "!")
	m := NewMessage(b1, "PRIVMSG", "alice!u@h", "#chan", "hi", false)

	require.Same(t, b1, m.Bot())
	m.SetBot(b2)
	assert.Same(t, b2, m.Bot())
}
