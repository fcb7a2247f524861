// Package redis implements the fingerprint cache backing duplicate detection
// at intake. Fingerprints of freshly created loads are kept per shipper with
// a TTL, so detection can see intakes committed moments ago without waiting
// for the SQL scan.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "meddrop:fingerprints:"

// fingerprintEntry is the wire form of a fingerprint in the cache.
type fingerprintEntry struct {
	LoadID      string     `json:"load_id"`
	ShipperID   string     `json:"shipper_id"`
	PickupID    string     `json:"pickup_id"`
	DropoffID   string     `json:"dropoff_id"`
	ServiceType string     `json:"service_type"`
	ReadyTime   *time.Time `json:"ready_time,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// FingerprintCache implements ports.FingerprintCache on Redis. Each shipper
// gets one list of recent fingerprints under a shared TTL.
type FingerprintCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFingerprintCache creates a cache with the given per-shipper TTL.
func NewFingerprintCache(client *redis.Client, ttl time.Duration) *FingerprintCache {
	return &FingerprintCache{
		client: client,
		ttl:    ttl,
	}
}

// RecentFingerprints returns the cached fingerprints for a shipper. A missing
// key yields an empty slice.
func (c *FingerprintCache) RecentFingerprints(
	ctx context.Context,
	shipperID kernel.UUID,
) ([]services.LoadFingerprint, error) {
	if err := shipperID.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.client.LRange(ctx, c.key(shipperID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read fingerprints: %w", err)
	}

	fingerprints := make([]services.LoadFingerprint, 0, len(raw))
	for _, item := range raw {
		var entry fingerprintEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode fingerprint: %w", err)
		}

		fingerprint, err := entry.toDomain()
		if err != nil {
			return nil, err
		}
		fingerprints = append(fingerprints, fingerprint)
	}

	return fingerprints, nil
}

// Remember appends a fingerprint to the shipper's recent set and refreshes
// the TTL.
func (c *FingerprintCache) Remember(
	ctx context.Context,
	fingerprint services.LoadFingerprint,
) error {
	if err := fingerprint.ShipperID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(fromDomain(fingerprint))
	if err != nil {
		return fmt.Errorf("encode fingerprint: %w", err)
	}

	key := c.key(fingerprint.ShipperID)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store fingerprint: %w", err)
	}

	return nil
}

func (c *FingerprintCache) key(shipperID kernel.UUID) string {
	return keyPrefix + shipperID.String()
}

func fromDomain(fingerprint services.LoadFingerprint) fingerprintEntry {
	return fingerprintEntry{
		LoadID:      fingerprint.LoadID.String(),
		ShipperID:   fingerprint.ShipperID.String(),
		PickupID:    fingerprint.PickupID.String(),
		DropoffID:   fingerprint.DropoffID.String(),
		ServiceType: fingerprint.ServiceType.String(),
		ReadyTime:   fingerprint.ReadyTime,
		Deadline:    fingerprint.Deadline,
	}
}

func (e fingerprintEntry) toDomain() (services.LoadFingerprint, error) {
	loadID, err := kernel.UUIDFromString(e.LoadID)
	if err != nil {
		return services.LoadFingerprint{}, err
	}

	shipperID, err := kernel.UUIDFromString(e.ShipperID)
	if err != nil {
		return services.LoadFingerprint{}, err
	}

	pickupID, err := kernel.UUIDFromString(e.PickupID)
	if err != nil {
		return services.LoadFingerprint{}, err
	}

	dropoffID, err := kernel.UUIDFromString(e.DropoffID)
	if err != nil {
		return services.LoadFingerprint{}, err
	}

	serviceType, err := load.ServiceTypeFromString(e.ServiceType)
	if err != nil {
		return services.LoadFingerprint{}, err
	}

	return services.LoadFingerprint{
		LoadID:      loadID,
		ShipperID:   shipperID,
		PickupID:    pickupID,
		DropoffID:   dropoffID,
		ServiceType: serviceType,
		ReadyTime:   e.ReadyTime,
		Deadline:    e.Deadline,
	}, nil
}
