package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// HouseguestIdentity is an AI cast member profile loaded from the data folder.
type HouseguestIdentity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities    []HouseguestIdentity
	identityIDMap map[string]bool
	nameMap       map[string]string
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the AI houseguest profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read houseguest identities: %w", err)
			return
		}

		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal houseguest identities: %w", err)
			return
		}

		identityIDMap = make(map[string]bool)
		nameMap = make(map[string]string)
		for _, identity := range identities {
			if identity.ID != "" {
				identityIDMap[identity.ID] = true
				nameMap[identity.ID] = identity.Name
			}
		}
	})
	return loadErr
}

// IdentityCount returns the number of loaded AI profiles.
func IdentityCount() int {
	return len(identities)
}

// GetIdentity returns the AI profile at the given index, wrapping when the
// index exceeds the loaded pool.
func GetIdentity(index int) HouseguestIdentity {
	if len(identities) == 0 {
		return HouseguestIdentity{
			ID:   fmt.Sprintf("hg-bot-%d", index),
			Name: fmt.Sprintf("Houseguest %d", index+1),
		}
	}
	return identities[index%len(identities)]
}

// IsBot reports whether the given competitor id belongs to an AI houseguest.
func IsBot(id string) bool {
	return identityIDMap[id]
}

// GetName returns the display name for an AI houseguest id, or "".
func GetName(id string) string {
	return nameMap[id]
}
