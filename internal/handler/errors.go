package handler

import (
	"errors"
	"fmt"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"go.uber.org/zap"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

func usage(syntax string) error {
	return fmt.Errorf("%w: %s", errUsage, syntax)
}

// fail turns a rejected command into an ERROR notification. Only errors of
// no known kind are logged above debug.
func (h *ConsoleHandler) fail(err error) {
	n := domain.Notification{Type: domain.NotificationError, Timestamp: h.now()}

	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		n.Message = "Stock insuffisant"
		n.Details = fmt.Sprintf("Seulement %d en stock.", stockErr.Available)
	case errors.Is(err, domain.ErrInvalidAmount):
		n.Message = "Montant invalide"
	case errors.Is(err, domain.ErrInvalidQuantity):
		n.Message = "Quantité invalide"
	case errors.Is(err, domain.ErrInvalidPIN):
		n.Message = "Code PIN Incorrect"
	case errors.Is(err, domain.ErrForbidden):
		n.Message = "Accès Refusé"
		n.Details = "Réservé à l'admin"
	case errors.Is(err, domain.ErrNotAuthenticated):
		n.Message = "Non connecté"
		n.Details = "Entrez votre code PIN."
	case errors.Is(err, domain.ErrMissingOperator):
		n.Message = "Opérateur requis"
	case errors.Is(err, domain.ErrUnknownCategory):
		n.Message = "Catégorie inconnue"
	case errors.Is(err, domain.ErrNotFound):
		n.Message = "Introuvable"
	case errors.Is(err, domain.ErrDuplicateKey):
		n.Message = "Déjà existant"
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidService):
		n.Message = "Données invalides"
		n.Details = err.Error()
	case errors.Is(err, errUsage):
		n.Message = "Syntaxe"
		n.Details = err.Error()
	case errors.Is(err, errUnknownCommand):
		n.Message = "Commande inconnue"
		n.Details = "Tapez help."
	default:
		h.logger.Error("Command failed", zap.Error(err))
		n.Message = "Erreur"
		n.Details = err.Error()
	}

	h.logger.Debug("Command rejected", zap.String("message", n.Message), zap.Error(err))
	h.notifier.PublishNotification(n)
}
