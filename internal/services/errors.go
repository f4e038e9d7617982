package services

import (
	"errors"
	"fmt"

	"mercato_back_end/internal/models"
)

// Taxonomie fermée des erreurs métier. Tout le reste (I/O stockage, etc.)
// est une erreur inattendue que la couche HTTP journalise en 500.
var (
	ErrForbidden = errors.New("accès refusé")
	ErrNotFound  = errors.New("ressource introuvable")
	ErrEmptyCart = errors.New("panier vide")
)

// StockConflictError : la quantité demandée dépasserait le stock courant.
// Porte le détail nécessaire pour expliquer le refus sans second aller-retour.
type StockConflictError struct {
	ProductID string
	Requested int // quantité totale demandée (existant + ajout)
	Available int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock insuffisant pour le produit %s : %d demandé, %d disponible",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError : l'arête demandée n'existe pas dans la machine à états.
type InvalidTransitionError struct {
	Current   models.OrderStatus
	Requested models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition de statut invalide : %s -> %s", e.Current, e.Requested)
}

func requireBuyer(caller models.Identity) error {
	if caller.Role != models.RoleBuyer {
		return ErrForbidden
	}
	return nil
}

func requireAdmin(caller models.Identity) error {
	if caller.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
