package storage

import (
	"context"
	"strings"
)

// PlayerNameKey is the key the remembered player name lives under.
const PlayerNameKey = "skybound_player_name"

// Prefs keeps small per-device preferences in the KV table.
type Prefs struct {
	kv *Store
}

// NewPrefs returns Prefs backed by kv.
func NewPrefs(kv *Store) *Prefs {
	return &Prefs{kv: kv}
}

// PlayerName returns the remembered player name, or "" if none is set.
func (p *Prefs) PlayerName(ctx context.Context) (string, error) {
	name, ok, err := p.kv.Get(ctx, PlayerNameKey)
	if err != nil || !ok {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// SetPlayerName remembers name for the next session.
func (p *Prefs) SetPlayerName(ctx context.Context, name string) error {
	return p.kv.Put(ctx, PlayerNameKey, name)
}

// ForgetPlayerName clears the remembered name.
func (p *Prefs) ForgetPlayerName(ctx context.Context) error {
	return p.kv.Delete(ctx, PlayerNameKey)
}
