package main

import (
	"regexp"
	"strings"
)

// Message wraps one parsed inbound IRC event: the verb or numeric, the full
// sender, the destination and the text payload, plus an optional command
// interpretation of the text. It is built once per event and read by the
// command handlers; nothing here touches the network directly.
type Message struct {
	bot    *Bot
	code   string // verb or numeric, e.g. "PRIVMSG" or "332"
	sender string // nick!user@host, or a bare server name
	dest   string // #channel, or our own nick for a PM
	text   string

	isCommand bool
	command   string
	args      []string
}

// NewMessage builds a Message from the four protocol fields. No validation
// happens here; odd shapes just give degenerate accessor results. When
// isCommand is set the command name and arguments are derived immediately.
func NewMessage(bot *Bot, code, sender, dest, text string, isCommand bool) *Message {
	m := &Message{
		bot:    bot,
		code:   code,
		sender: sender,
		dest:   dest,
		text:   text,
	}
	if isCommand {
		m.ParseCommand()
	}
	return m
}

// ParseCommand marks the message as a command and derives the command name
// and arguments from the text. Prefix form ("!cmd a b") drops the prefix
// character and splits the rest; addressed form ("newbot: cmd a b") splits
// the whole text and drops the leading mention. Empty input yields an empty
// command name, never an error.
func (m *Message) ParseCommand() {
	m.isCommand = true

	var words []string
	if p := m.bot.Prefix(); p != "" && strings.HasPrefix(m.text, p) {
		words = strings.Split(m.text[len(p):], " ")
	} else {
		words = strings.Split(m.text, " ")[1:]
	}
	if len(words) == 0 {
		return
	}
	m.command = strings.ToLower(words[0])
	m.args = words[1:]
}

// Bot returns the owning bot context.
func (m *Message) Bot() *Bot { return m.bot }

// SetBot rebinds the bot context. The transport sets it once at
// construction; this exists for tests and for reuse across reconnects.
func (m *Message) SetBot(b *Bot) { m.bot = b }

// Code returns the protocol verb or numeric this event arrived as.
func (m *Message) Code() string { return m.code }

// Sender returns the full sender string, nick!user@host for users or a bare
// hostname for the server itself.
func (m *Message) Sender() string { return m.sender }

// SenderIsServer reports whether the event came from the server rather than
// a user; servers carry no nick!user part.
func (m *Message) SenderIsServer() bool {
	return !strings.Contains(m.sender, "!")
}

// SenderNick returns the sender up to the first "!". For a server-origin
// event (no "!") the whole sender comes back; check SenderIsServer first.
func (m *Message) SenderNick() string {
	nick, _, _ := strings.Cut(m.sender, "!")
	return nick
}

// SenderHost returns the sender past the first "@", or "" when there is
// none.
func (m *Message) SenderHost() string {
	_, host, _ := strings.Cut(m.sender, "@")
	return host
}

// SenderIsSuperuser matches the full sender against the configured
// superuser patterns.
func (m *Message) SenderIsSuperuser() bool {
	return m.bot.IsSuperuser(m.sender)
}

// Dest returns the destination: a #channel, or our nick for a PM.
func (m *Message) Dest() string { return m.dest }

// Text returns the raw text payload.
func (m *Message) Text() string { return m.text }

// IsPM reports whether the message was sent to us directly rather than to
// a channel.
func (m *Message) IsPM() bool {
	return !strings.HasPrefix(m.dest, "#")
}

// WasAddressed reports whether the text starts with our nick, anything, and
// a space ("newbot: do x"). The nick is matched literally, so nicks with
// regexp metacharacters behave the same as plain ones.
func (m *Message) WasAddressed() bool {
	ok, _ := regexp.MatchString("^"+regexp.QuoteMeta(m.bot.Nick())+".* ", m.text)
	return ok
}

// TextWithoutAddress returns the text with the leading address token
// ("newbot:") cut off. Text with no space in it comes back unchanged.
func (m *Message) TextWithoutAddress() string {
	_, rest, ok := strings.Cut(m.text, " ")
	if !ok {
		return m.text
	}
	return rest
}

// IsCommand reports whether a command was derived from the text. Command
// and Args are only meaningful when this is true.
func (m *Message) IsCommand() bool { return m.isCommand }

// Command returns the lower-cased command name.
func (m *Message) Command() string { return m.command }

// Args returns the command arguments in order.
func (m *Message) Args() []string { return m.args }

// Reply sends text back where the message came from. Channel replies are
// prefixed with the sender's nick; private replies go straight back to the
// sender.
func (m *Message) Reply(text string) {
	if m.IsPM() {
		m.bot.Writeln("PRIVMSG %s :%s", m.SenderNick(), text)
		return
	}
	m.bot.Writeln("PRIVMSG %s :%s: %s", m.dest, m.SenderNick(), text)
}

// Pm sends text to the sender directly, even when the message was public.
func (m *Message) Pm(text string) {
	m.bot.Writeln("PRIVMSG %s :%s", m.SenderNick(), text)
}

// Say is Reply without the nick prefix.
func (m *Message) Say(text string) {
	target := m.dest
	if m.IsPM() {
		target = m.SenderNick()
	}
	m.bot.Writeln("PRIVMSG %s :%s", target, text)
}

// Notice sends an IRC NOTICE to the sender.
func (m *Message) Notice(text string) {
	m.bot.Writeln("NOTICE %s :%s", m.SenderNick(), text)
}
