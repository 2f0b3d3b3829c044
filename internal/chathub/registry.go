package chathub

import "sync"

// Registry - таблиця "ключ розмови -> множина живих сесій".
// Створюється один раз у main і передається в Hub за посиланням; жодного
// глобального стану. Вміст живе лише доки живе процес.
type Registry struct {
	mu sync.RWMutex

	conversations map[string]map[Client]struct{}
	// joined tracks which key each client is currently in.
	// Invariant: a session is a member of at most one conversation at a time.
	joined map[Client]string
}

// NewRegistry створює порожній Registry.
func NewRegistry() *Registry {
	return &Registry{
		conversations: make(map[string]map[Client]struct{}),
		joined:        make(map[Client]string),
	}
}

// Join adds the client to the set for key. Idempotent: joining the same key
// twice is a no-op. If the client was in a different conversation it is moved,
// preserving the single-conversation invariant.
func (r *Registry) Join(key string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.joined[c]; ok {
		if prev == key {
			return
		}
		r.removeLocked(prev, c)
	}

	set, ok := r.conversations[key]
	if !ok {
		set = make(map[Client]struct{})
		r.conversations[key] = set
	}
	set[c] = struct{}{}
	r.joined[c] = key
}

// Leave removes the client from the set for key. Once the set is empty the
// key is dropped entirely - no empty entries linger.
func (r *Registry) Leave(key string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.joined[c] != key {
		return
	}
	r.removeLocked(key, c)
	delete(r.joined, c)
}

func (r *Registry) removeLocked(key string, c Client) {
	set, ok := r.conversations[key]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.conversations, key)
	}
}

// Snapshot returns a point-in-time copy of the membership for key.
// Broadcast iterates the copy, so a session leaving mid-broadcast never
// corrupts iteration and never causes skipped or double delivery to others.
func (r *Registry) Snapshot(key string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conversations[key]
	if len(set) == 0 {
		return nil
	}
	clients := make([]Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// UserPresent reports whether any live session of userID is joined to key.
func (r *Registry) UserPresent(key string, userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for c := range r.conversations[key] {
		if c.GetUserID() == userID {
			return true
		}
	}
	return false
}

// SessionsForUser returns how many live sessions userID has across all
// conversations. Used to decide when the user goes fully offline.
func (r *Registry) SessionsForUser(userID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for c := range r.joined {
		if c.GetUserID() == userID {
			n++
		}
	}
	return n
}

// Contains reports whether the client is currently a member of key's set.
func (r *Registry) Contains(key string, c Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conversations[key][c]
	return ok
}

// Len returns the number of sessions joined to key.
func (r *Registry) Len(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conversations[key])
}
