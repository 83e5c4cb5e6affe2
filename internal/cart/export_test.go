package cart

// Sessions reports how many sessions still hold a lock entry.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
