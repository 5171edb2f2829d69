// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/askup/metrics"
	"github.com/danielhkuo/askup/models"
)

// Subscription is one live question stream for a room. C delivers full
// sorted snapshots; the transport makes no ordering promise beyond
// "eventually the latest", so a slow consumer sees coalesced snapshots
// (pending stale delivery replaced by the newest one).
type Subscription struct {
	// C carries snapshots. It is closed when the subscription ends.
	C chan models.Snapshot

	room   string
	h      *hub
	closed bool // guarded by h.mu
}

// Close ends the subscription. Safe to call multiple times; no snapshot is
// delivered after Close returns.
func (sub *Subscription) Close() {
	sub.h.remove(sub)
}

// hub tracks the subscribers of each room. Rooms are materialized lazily on
// first subscribe and forgotten when their last subscriber leaves.
type hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscription]struct{}
}

func newHub() *hub {
	return &hub{rooms: make(map[string]map[*Subscription]struct{})}
}

// Subscribe opens a question stream for a room. The first snapshot (the
// current question set) is delivered before Subscribe returns.
func (s *Store) Subscribe(ctx context.Context, roomCode string) (*Subscription, error) {
	exists, err := s.RoomExists(ctx, roomCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: room not found", ErrNotFound)
	}

	questions, err := s.ListQuestions(ctx, roomCode)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		// Capacity one: push never blocks a mutation, and a lagging
		// consumer coalesces to the latest snapshot.
		C:    make(chan models.Snapshot, 1),
		room: roomCode,
		h:    s.hub,
	}
	sub.C <- models.Snapshot{RoomCode: roomCode, Questions: questions}

	s.hub.add(sub)
	metrics.StreamConnections.Inc()
	return sub, nil
}

// notify reloads a room's question set and pushes it to every subscriber.
// Called after each committed question mutation.
func (s *Store) notify(roomCode string) {
	if !s.hub.hasSubscribers(roomCode) {
		return
	}

	questions, err := s.ListQuestions(context.Background(), roomCode)
	if err != nil {
		slog.Warn("failed to load snapshot for stream", "room", roomCode, "error", err)
		return
	}

	s.hub.broadcast(models.Snapshot{RoomCode: roomCode, Questions: questions})
}

func (h *hub) add(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.rooms[sub.room]
	if subs == nil {
		subs = make(map[*Subscription]struct{})
		h.rooms[sub.room] = subs
	}
	subs[sub] = struct{}{}
}

func (h *hub) remove(sub *Subscription) {
	h.mu.Lock()
	if sub.closed {
		h.mu.Unlock()
		return
	}
	sub.closed = true
	if subs := h.rooms[sub.room]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.rooms, sub.room)
		}
	}
	h.mu.Unlock()

	close(sub.C)
	metrics.StreamConnections.Dec()
}

func (h *hub) hasSubscribers(roomCode string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomCode]) > 0
}

func (h *hub) broadcast(snap models.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.rooms[snap.RoomCode] {
		push(sub, snap)
		metrics.SnapshotsDelivered.Inc()
	}
}

// push delivers without blocking: if the subscriber still has an unread
// snapshot, it is replaced by the newer one.
func push(sub *Subscription, snap models.Snapshot) {
	select {
	case sub.C <- snap:
		return
	default:
	}
	select {
	case <-sub.C:
	default:
	}
	select {
	case sub.C <- snap:
	default:
	}
}

// dropRoom force-closes every subscription of a deleted room.
func (h *hub) dropRoom(roomCode string) {
	h.mu.Lock()
	subs := h.rooms[roomCode]
	delete(h.rooms, roomCode)
	var dropped []*Subscription
	for sub := range subs {
		sub.closed = true
		dropped = append(dropped, sub)
	}
	h.mu.Unlock()

	for _, sub := range dropped {
		close(sub.C)
		metrics.StreamConnections.Dec()
	}
}

// closeAll tears down every subscription; used on store shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	var dropped []*Subscription
	for room, subs := range h.rooms {
		for sub := range subs {
			sub.closed = true
			dropped = append(dropped, sub)
		}
		delete(h.rooms, room)
	}
	h.mu.Unlock()

	for _, sub := range dropped {
		close(sub.C)
		metrics.StreamConnections.Dec()
	}
}
