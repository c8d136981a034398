package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"tickethub/models"
)

// Snapshot keys. These mirror the keys the hosted demo used so existing
// dumps remain loadable.
const (
	KeyUsers   = "tickethub_users"
	KeyTickets = "tickethub_tickets"
	KeyOrders  = "tickethub_orders"
	KeySession = "tickethub_current_user"
)

// Store persists whole snapshots. Save writes all keys as one logical unit;
// Load returns the last saved snapshot, or an empty one when nothing (or
// nothing readable) is stored. An empty snapshot is the caller's signal to
// seed demo data.
type Store interface {
	Save(ctx context.Context, snap *models.Snapshot) error
	Load(ctx context.Context) (*models.Snapshot, error)
}

type encodedSnapshot struct {
	users   []byte
	tickets []byte
	orders  []byte
	session []byte // nil when no session is active
}

func encodeSnapshot(snap *models.Snapshot) (*encodedSnapshot, error) {
	var enc encodedSnapshot
	var err error

	if enc.users, err = json.Marshal(snap.Users); err != nil {
		return nil, err
	}
	if enc.tickets, err = json.Marshal(snap.Tickets); err != nil {
		return nil, err
	}
	if enc.orders, err = json.Marshal(snap.Orders); err != nil {
		return nil, err
	}
	if snap.CurrentUser != nil {
		if enc.session, err = json.Marshal(snap.CurrentUser); err != nil {
			return nil, err
		}
	}
	return &enc, nil
}

// decodeInto unmarshals one snapshot field. A corrupt payload poisons the
// whole snapshot: persistence is all-or-nothing, so the caller falls back
// to an empty state and reseeds rather than loading half a marketplace.
func decodeInto(key string, raw []byte, v any) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn("discarding corrupt snapshot", "key", key, "error", err)
		return false
	}
	return true
}

func decodeSnapshot(users, tickets, orders, session []byte) *models.Snapshot {
	snap := &models.Snapshot{}

	if !decodeInto(KeyUsers, users, &snap.Users) ||
		!decodeInto(KeyTickets, tickets, &snap.Tickets) ||
		!decodeInto(KeyOrders, orders, &snap.Orders) {
		return &models.Snapshot{}
	}
	var current models.User
	if len(session) > 0 {
		if !decodeInto(KeySession, session, &current) {
			return &models.Snapshot{}
		}
		snap.CurrentUser = &current
	}
	return snap
}
