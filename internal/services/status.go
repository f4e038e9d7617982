package services

import "mercato_back_end/internal/models"

// Table des transitions de statut autorisées — unique source de vérité.
// delivered et cancelled sont terminaux : aucune arête sortante.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// CanTransition indique si l'arête current -> next existe.
func CanTransition(current, next models.OrderStatus) bool {
	for _, allowed := range orderTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition valide l'arête sans effet de bord : l'écriture du statut
// reste à la charge de l'appelant.
func Transition(current, next models.OrderStatus) error {
	if !CanTransition(current, next) {
		return &InvalidTransitionError{Current: current, Requested: next}
	}
	return nil
}

// AllowedTransitions retourne les statuts atteignables depuis current
// (copie — la table reste immuable). Sert aussi d'oracle aux tests.
func AllowedTransitions(current models.OrderStatus) []models.OrderStatus {
	return append([]models.OrderStatus(nil), orderTransitions[current]...)
}
