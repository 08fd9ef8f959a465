package rostercache

import (
	"context"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/pikacalc/internal/domain/roster"
)

// ValkeyStore persists envelopes in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "pikacalc"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *ValkeyStore) Put(ctx context.Context, key string, payload []byte) error {
	cmd := s.client.B().Set().Key(s.entryKey(key)).Value(valkey.BinaryString(payload)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":roster:" + key
}

var _ roster.Store = (*ValkeyStore)(nil)
