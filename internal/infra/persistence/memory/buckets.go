package memory

import (
	"encoding/json"
	"fmt"

	"fpoconsole/pkg/domain"
)

// Buckets names the collections durable stores persist, one payload each.
var Buckets = []string{"farmers", "orders", "payments", "inventory", "staff"}

func bucketTargets(snap *domain.Snapshot) map[string]any {
	return map[string]any{
		"farmers":   &snap.Farmers,
		"orders":    &snap.Orders,
		"payments":  &snap.Payments,
		"inventory": &snap.Inventory,
		"staff":     &snap.Staff,
	}
}

// EncodeBuckets marshals each collection of snap to JSON keyed by bucket.
func EncodeBuckets(snap domain.Snapshot) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Buckets))
	targets := bucketTargets(&snap)
	for _, bucket := range Buckets {
		data, err := json.Marshal(targets[bucket])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = data
	}
	return out, nil
}

// DecodeBuckets rebuilds a snapshot from bucket payloads. Unknown buckets and
// empty payloads are skipped.
func DecodeBuckets(payloads map[string][]byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	targets := bucketTargets(&snap)
	for bucket, data := range payloads {
		target, ok := targets[bucket]
		if !ok || len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	return snap, nil
}

// Empty reports whether the store holds no records.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	return len(st.farmers.order) == 0 && len(st.orders.order) == 0 && len(st.payments.order) == 0 &&
		len(st.inventory.order) == 0 && len(st.staff.order) == 0
}
