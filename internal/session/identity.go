package session

import "github.com/spf13/viper"

const (
	keySessionID  = "session_id"
	keyPlayerName = "player_name"
)

// Identity resolves and persists the opaque session identifier that ties
// local state to a remote ledger row, plus the last submitted display name.
// Both live as plain keys in the viper config file.
type Identity struct {
	v *viper.Viper
}

// NewIdentity wraps a viper instance that already points at a config file.
func NewIdentity(v *viper.Viper) *Identity {
	return &Identity{v: v}
}

// Resolve returns the persisted session identifier, or empty when none has
// been minted yet.
func (i *Identity) Resolve() string {
	return i.v.GetString(keySessionID)
}

// Persist stores the session identifier as current.
func (i *Identity) Persist(id string) error {
	i.v.Set(keySessionID, id)
	return i.write()
}

// Clear forgets the persisted identifier so the next init mints a brand-new
// session.
func (i *Identity) Clear() error {
	i.v.Set(keySessionID, "")
	return i.write()
}

// Name returns the persisted display name, if any.
func (i *Identity) Name() string {
	return i.v.GetString(keyPlayerName)
}

// SetName persists the display name.
func (i *Identity) SetName(name string) error {
	i.v.Set(keyPlayerName, name)
	return i.write()
}

func (i *Identity) write() error {
	if err := i.v.WriteConfig(); err != nil {
		// WriteConfig fails when the config file does not exist yet.
		return i.v.SafeWriteConfig()
	}
	return nil
}
