// Package storage keeps the bot's account registry: bcrypt-hashed
// passwords persisted in a JSON file, plus in-memory sessions keyed by the
// full nick!user@host of whoever identified.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Account struct {
	Name         string `json:"name"`
	Hash         []byte `json:"hash"`
	RegisteredTS int64  `json:"registered_ts"`
	LastSeenTS   int64  `json:"last_seen_ts"`
}

type state struct {
	Accounts map[string]Account `json:"accounts"` // key: lowercased name
}

type AccountDB struct {
	path string

	mu sync.RWMutex
	s  state
	// live sessions: full sender string -> account name (original case)
	sessions map[string]string
}

func NewAccountDB(path string) *AccountDB {
	return &AccountDB{
		path:     path,
		s:        state{Accounts: make(map[string]Account)},
		sessions: make(map[string]string),
	}
}

// Load reads the JSON file; a missing file just means an empty registry.
func (db *AccountDB) Load() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	b, err := os.ReadFile(db.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var st state
	if err := json.Unmarshal(b, &st); err != nil {
		return fmt.Errorf("parse %s: %w", db.path, err)
	}
	if st.Accounts == nil {
		st.Accounts = make(map[string]Account)
	}
	db.s = st
	return nil
}

// Save writes the registry to a temp file and renames it into place.
func (db *AccountDB) Save() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tmp := db.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(db.s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, db.path)
}

// Register creates a new account with a bcrypt hash of password.
func (db *AccountDB) Register(name, password string) error {
	if name == "" || password == "" {
		return errors.New("empty account or password")
	}
	key := strings.ToLower(name)

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, exists := db.s.Accounts[key]; exists {
		return errors.New("account already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	db.s.Accounts[key] = Account{
		Name:         name,
		Hash:         hash,
		RegisteredTS: now,
		LastSeenTS:   now,
	}
	return nil
}

// Verify checks a password against the stored hash.
func (db *AccountDB) Verify(name, password string) bool {
	db.mu.RLock()
	acct, ok := db.s.Accounts[strings.ToLower(name)]
	db.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(acct.Hash, []byte(password)) == nil
}

// Identify verifies the password and, on success, binds the sender to the
// account and refreshes its last-seen time.
func (db *AccountDB) Identify(sender, name, password string) bool {
	if !db.Verify(name, password) {
		return false
	}
	key := strings.ToLower(name)

	db.mu.Lock()
	defer db.mu.Unlock()
	acct := db.s.Accounts[key]
	acct.LastSeenTS = time.Now().Unix()
	db.s.Accounts[key] = acct
	db.sessions[sender] = acct.Name
	return true
}

// Logout drops the sender's session, if any.
func (db *AccountDB) Logout(sender string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, sender)
}

// SessionAccount returns the account the sender identified as, or "".
func (db *AccountDB) SessionAccount(sender string) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.sessions[sender]
}

// Info returns the stored account by name.
func (db *AccountDB) Info(name string) (Account, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	acct, ok := db.s.Accounts[strings.ToLower(name)]
	return acct, ok
}
