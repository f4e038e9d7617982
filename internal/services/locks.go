package services

import "sync"

// userLocks sérialise la séquence lecture-vérification-écriture du panier
// d'un même acheteur : deux AddItem concurrents ne peuvent plus passer le
// contrôle de stock sur une quantité périmée. Un panier n'appartient qu'à
// un acheteur, donc jamais de verrou global.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
