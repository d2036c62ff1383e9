package profilestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/venuecast/internal/domain/profile"
)

// ValkeyStore persists profiles as JSON values in a Valkey-compatible
// database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "profile"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, id string) (profile.Profile, bool, error) {
	cmd := s.client.B().Get().Key(s.key(id)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, err
	}
	var p profile.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

func (s *ValkeyStore) Put(ctx context.Context, p profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	cmd := s.client.B().Set().Key(s.key(p.ID)).Value(string(payload)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}
