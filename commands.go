package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/auscompgeek/newbot/storage"
)

// RegisterHandlers wires the built-in commands onto the bot.
func RegisterHandlers(b *Bot, accounts *storage.AccountDB) {
	b.Handle("ping", func(b *Bot, m *Message) {
		m.Reply("pong")
	})

	b.Handle("echo", func(b *Bot, m *Message) {
		m.Say(strings.Join(m.Args(), " "))
	})

	b.Handle("whoami", func(b *Bot, m *Message) {
		if m.SenderIsServer() {
			m.Say("you appear to be a server")
			return
		}
		who := fmt.Sprintf("you are %s on %s", m.SenderNick(), m.SenderHost())
		if acc := accounts.SessionAccount(m.Sender()); acc != "" {
			who += ", identified as " + acc
		}
		if m.SenderIsSuperuser() {
			who += " (superuser)"
		}
		m.Reply(who)
	})

	b.Handle("register", func(b *Bot, m *Message) {
		if !m.IsPM() {
			m.Notice("register in private, not in a channel")
			return
		}
		args := m.Args()
		if len(args) < 2 {
			m.Pm("usage: register <account> <password>")
			return
		}
		if err := accounts.Register(args[0], args[1]); err != nil {
			m.Pm(fmt.Sprintf("registration failed: %v", err))
			return
		}
		if err := accounts.Save(); err != nil {
			b.Logger.Errorf("save accounts: %v", err)
		}
		m.Pm("account registered")
	})

	b.Handle("identify", func(b *Bot, m *Message) {
		if !m.IsPM() {
			m.Notice("identify in private, not in a channel")
			return
		}
		args := m.Args()
		if len(args) < 2 {
			m.Pm("usage: identify <account> <password>")
			return
		}
		if !accounts.Identify(m.Sender(), args[0], args[1]) {
			m.Pm("identify failed: wrong account or password")
			return
		}
		if err := accounts.Save(); err != nil {
			b.Logger.Errorf("save accounts: %v", err)
		}
		m.Pm("you are now identified as " + args[0])
	})

	b.Handle("info", func(b *Bot, m *Message) {
		args := m.Args()
		name := accounts.SessionAccount(m.Sender())
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			m.Notice("usage: info <account> (or identify first)")
			return
		}
		acct, ok := accounts.Info(name)
		if !ok {
			m.Notice("no such account")
			return
		}
		m.Notice(fmt.Sprintf("%s: registered %s, last seen %s",
			acct.Name,
			time.Unix(acct.RegisteredTS, 0).UTC().Format(time.RFC3339),
			time.Unix(acct.LastSeenTS, 0).UTC().Format(time.RFC3339)))
	})

	// Superuser-only controls
	b.Handle("join", requireSuperuser(func(b *Bot, m *Message) {
		if len(m.Args()) < 1 {
			m.Reply("usage: join <#channel>")
			return
		}
		b.Join(m.Args()[0])
	}))

	b.Handle("part", requireSuperuser(func(b *Bot, m *Message) {
		if len(m.Args()) < 1 {
			m.Reply("usage: part <#channel>")
			return
		}
		b.Part(m.Args()[0])
	}))

	b.Handle("say", requireSuperuser(func(b *Bot, m *Message) {
		args := m.Args()
		if len(args) < 2 {
			m.Reply("usage: say <target> <text>")
			return
		}
		b.Writeln("PRIVMSG %s :%s", args[0], strings.Join(args[1:], " "))
	}))

	b.Handle("nick", requireSuperuser(func(b *Bot, m *Message) {
		if len(m.Args()) < 1 {
			m.Reply("usage: nick <newnick>")
			return
		}
		b.Writeln("NICK %s", m.Args()[0])
	}))
}

// requireSuperuser gates a handler on the configured superuser patterns.
func requireSuperuser(h Handler) Handler {
	return func(b *Bot, m *Message) {
		if !m.SenderIsSuperuser() {
			m.Notice("you are not allowed to do that")
			return
		}
		h(b, m)
	}
}
